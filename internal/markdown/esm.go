package markdown

import (
	"bytes"
	"strings"
)

// StripESM removes top-level MDX `import`/`export` statements from a body.
// Lines inside fenced code blocks are left untouched. Multi-line statements
// are consumed until a line ending in `;` or a closing `}`.
func StripESM(body []byte) []byte {
	lines := bytes.SplitAfter(body, []byte("\n"))
	out := make([]byte, 0, len(body))

	inFence := false
	fence := ""
	inStatement := false
	for _, raw := range lines {
		line := strings.TrimRight(string(raw), "\r\n")
		trimmed := strings.TrimSpace(line)

		if inStatement {
			if strings.HasSuffix(trimmed, ";") || strings.HasPrefix(trimmed, "}") {
				inStatement = false
			}
			continue
		}

		if marker := fenceMarker(trimmed); marker != "" {
			switch {
			case !inFence:
				inFence, fence = true, marker
			case strings.HasPrefix(trimmed, fence):
				inFence = false
			}
			out = append(out, raw...)
			continue
		}

		if !inFence && isESMStart(line) {
			if !statementComplete(trimmed) {
				inStatement = true
			}
			continue
		}
		out = append(out, raw...)
	}
	return bytes.TrimLeft(out, "\r\n")
}

func fenceMarker(trimmed string) string {
	for _, m := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, m) {
			return m
		}
	}
	return ""
}

func isESMStart(line string) bool {
	return strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ")
}

func statementComplete(trimmed string) bool {
	if strings.HasSuffix(trimmed, ";") {
		return true
	}
	// `import x from "y"` without a semicolon, or a single-line export.
	if strings.Contains(trimmed, " from ") || strings.HasPrefix(trimmed, "import \"") || strings.HasPrefix(trimmed, "import '") {
		return true
	}
	return !strings.HasSuffix(trimmed, "{") && !strings.HasSuffix(trimmed, "(") && !strings.HasSuffix(trimmed, ",")
}

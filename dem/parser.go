package dem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a detector error model.
// Error lines declare one mechanism each; "detector" and "logical_observable"
// lines only bump the identifier space. Other directives (coordinate shifts,
// repeat blocks already flattened by the producing tool) are ignored, as are
// blank lines and "#" comments.
func Parse(r io.Reader) (*Model, error) {
	var (
		mechanisms    []Mechanism
		nbDetectors   int
		nbObservables int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		ln := sc.Text()
		if idx := strings.Index(ln, "#"); idx >= 0 {
			ln = ln[:idx]
		}
		fields := strings.Fields(ln)
		if len(fields) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(fields[0], "error"):
			mec, err := parseError(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
			mechanisms = append(mechanisms, mec)
		case fields[0] == "detector" || fields[0] == "logical_observable":
			// Declaration lines: only widen the identifier space.
			for _, f := range fields[1:] {
				if id, ok := targetID(f, 'D'); ok && id >= nbDetectors {
					nbDetectors = id + 1
				}
				if id, ok := targetID(f, 'L'); ok && id >= nbObservables {
					nbObservables = id + 1
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read model: %v", err)
	}
	return New(mechanisms, nbDetectors, nbObservables), nil
}

// parseError parses one "error(<p>) ..." or "error[<flag>](<p>) ..." line,
// already split into fields.
func parseError(fields []string) (Mechanism, error) {
	var mec Mechanism
	head := fields[0]
	rest := head[len("error"):]
	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return mec, fmt.Errorf("unterminated flag in %q", head)
		}
		mec.Flag = rest[1:end]
		rest = rest[end+1:]
	}
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return mec, fmt.Errorf("missing probability in %q", head)
	}
	prob, err := strconv.ParseFloat(rest[1:len(rest)-1], 64)
	if err != nil {
		return mec, fmt.Errorf("invalid probability in %q: %v", head, err)
	}
	mec.Probability = prob
	for _, f := range fields[1:] {
		if id, ok := targetID(f, 'D'); ok {
			mec.Detectors = append(mec.Detectors, id)
		} else if id, ok := targetID(f, 'L'); ok {
			mec.Observables = append(mec.Observables, id)
		} else if f != "^" { // separator between decomposed error components
			return mec, fmt.Errorf("unknown target %q", f)
		}
	}
	return mec, nil
}

// targetID parses a "D<n>" or "L<n>" token.
func targetID(s string, kind byte) (int, bool) {
	if len(s) < 2 || s[0] != kind {
		return 0, false
	}
	id, err := strconv.Atoi(s[1:])
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

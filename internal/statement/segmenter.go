package statement

import "strings"

// Segment partitions one page's lines into transaction blocks.
//
// Boilerplate lines are dropped. A line whose date token validates under
// the format's grammar closes the accumulating block and opens a new one;
// every other surviving line is appended to the open block. Lines before
// the first start line are noise and are discarded. The last open block is
// emitted at end of input.
func Segment(lines []string, f *Format) []Block {
	var blocks []Block
	var current []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if f.IsBoilerplate(line) {
			continue
		}

		if f.IsStart(line) {
			if current != nil {
				blocks = append(blocks, Block{Lines: current})
			}
			current = []string{line}
			continue
		}

		if current != nil {
			current = append(current, line)
		}
	}

	if current != nil {
		blocks = append(blocks, Block{Lines: current})
	}

	return blocks
}

package main

// Reading files into buffers and writing buffers back to disk.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// expandTabs replaces every tab with Config.TabWidth spaces.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", Config.TabWidth))
}

// readText reads r line by line, expanding tabs. Line breaks are kept as they
// are.
func readText(r io.Reader) (string, error) {
	var sb strings.Builder
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		sb.WriteString(expandTabs(line))
		if err == io.EOF {
			break
		}
	}
	return sb.String(), nil
}

// readFile loads path with tabs expanded.
func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	text, err := readText(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return text, nil
}

// writeFile truncates or creates path and writes the whole buffer to it.
func writeFile(path string, b *Buffer) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	writer := bufio.NewWriter(f)
	n, err := b.WriteTo(writer)
	if err == nil {
		err = writer.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("writing %s: %w", path, err)
	}
	return n, nil
}

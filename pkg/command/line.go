package command

import "strings"

// Tokenize splits a command line on whitespace. The first token is the
// command name and the rest are its arguments. Quoting is not supported.
func Tokenize(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, ErrEmptyCommandLine
	}
	return fields[0], fields[1:], nil
}

// SplitName maps "apps:info" to ("apps", "info") and "apps" to ("apps", "index").
func SplitName(name string) (group, method string) {
	group, method, found := strings.Cut(name, ":")
	if !found || method == "" {
		return group, "index"
	}
	return group, method
}

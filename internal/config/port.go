package config

import "strconv"

// Port is the HTTP listen port. It decodes like a lenient integer parse: the
// leading digits of the value are used ("8080abc" is 8080), and anything that
// does not yield a usable port falls back to DefaultPort instead of failing.
type Port int

// Decode implements envconfig.Decoder.
func (p *Port) Decode(value string) error {
	*p = ParsePort(value)
	return nil
}

// Int returns the port as an int.
func (p Port) Int() int {
	return int(p)
}

// ParsePort parses value as a port, returning DefaultPort when it is empty,
// non-numeric or outside 1-65535.
func ParsePort(value string) Port {
	i := 0
	for i < len(value) && (value[i] == ' ' || value[i] == '\t' || value[i] == '\n' || value[i] == '\r') {
		i++
	}
	start := i
	if i < len(value) && (value[i] == '+' || value[i] == '-') {
		i++
	}
	digits := i
	for i < len(value) && value[i] >= '0' && value[i] <= '9' {
		i++
	}
	if i == digits {
		return DefaultPort
	}

	n, err := strconv.Atoi(value[start:i])
	if err != nil || n <= 0 || n > 65535 {
		return DefaultPort
	}
	return Port(n)
}

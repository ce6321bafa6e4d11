package caps

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrUnknownLimit is returned for configuration names not in the table.
var ErrUnknownLimit = errors.New("caps: unknown limit")

// WriteConf writes c in glslang's resource configuration format,
// one "Name value" pair per line, integer limits first.
func (c Capabilities) WriteConf(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, f := range c.intFields() {
		fmt.Fprintf(bw, "%s %d\n", f.name, *f.ptr)
	}
	for _, f := range c.limitFields() {
		v := 0
		if *f.ptr {
			v = 1
		}
		fmt.Fprintf(bw, "%s %d\n", f.name, v)
	}
	return bw.Flush()
}

// Conf returns c rendered by WriteConf.
func (c Capabilities) Conf() string {
	var sb strings.Builder
	_ = c.WriteConf(&sb) // strings.Builder never fails
	return sb.String()
}

// Set assigns the limit named by its configuration name.
// Limit flags take any non-zero value as true.
func (c *Capabilities) Set(name string, value int) error {
	for _, f := range c.intFields() {
		if f.name == name {
			*f.ptr = value
			return nil
		}
	}
	for _, f := range c.limitFields() {
		if f.name == name {
			*f.ptr = value != 0
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownLimit, name)
}

// Get returns the value of the limit named by its configuration name.
func (c Capabilities) Get(name string) (int, bool) {
	for _, f := range c.intFields() {
		if f.name == name {
			return *f.ptr, true
		}
	}
	for _, f := range c.limitFields() {
		if f.name == name {
			if *f.ptr {
				return 1, true
			}
			return 0, true
		}
	}
	return 0, false
}

// ParseConf applies a configuration in WriteConf's format on top of base.
// Names and values are whitespace separated and need not be one pair per
// line. Names missing from the input keep base's values.
func ParseConf(r io.Reader, base Capabilities) (Capabilities, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	c := base
	for sc.Scan() {
		name := sc.Text()
		if !sc.Scan() {
			return base, fmt.Errorf("caps: missing value for %q", name)
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return base, fmt.Errorf("caps: value for %q: %w", name, err)
		}
		if err := c.Set(name, v); err != nil {
			return base, err
		}
	}
	if err := sc.Err(); err != nil {
		return base, fmt.Errorf("caps: read configuration: %w", err)
	}
	return c, nil
}

// Names returns every configuration name in WriteConf order.
func Names() []string {
	var c Capabilities
	ints := c.intFields()
	flags := c.limitFields()
	names := make([]string, 0, len(ints)+len(flags))
	for _, f := range ints {
		names = append(names, f.name)
	}
	for _, f := range flags {
		names = append(names, f.name)
	}
	return names
}

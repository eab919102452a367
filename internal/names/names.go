/*
Package names reads census name-frequency data into a persistent ordered map.

Input data consists of lines of four whitespace-separated fields:

	SMITH          1.006  1.006      1
	JOHNSON        0.810  1.816      2

i.e., a name, the frequency of the name in percent, the cumulative frequency
of all names up to and including this one, and the rank of the name.
*/
package names

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/bstmap/persistent/bst"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// tracer traces with key 'fp.names'.
func tracer() tracing.Trace {
	return tracing.Select("fp.names")
}

// Info holds the census data for a name.
type Info struct {
	Name       string
	Frequency  float64
	Cumulative float64
	Rank       int
}

func (info Info) String() string {
	return fmt.Sprintf("%s: frequency %.3f, cumulative %.3f, rank %d",
		info.Name, info.Frequency, info.Cumulative, info.Rank)
}

// Normalize brings a name into the form used as key in a name map.
func Normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NewMap creates an empty name map. The map rejects empty names.
func NewMap() *bst.Map[string, Info] {
	return bst.NewOrdered[string, Info](bst.WithKeyValidator[string, Info](func(name string) bool {
		return name != ""
	}))
}

// Parse parses a single line of name data.
func Parse(line string) (Info, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Info{}, errors.Errorf("expected 4 fields, have %d", len(fields))
	}
	info := Info{Name: Normalize(fields[0])}
	var err error
	if info.Frequency, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return Info{}, errors.Wrap(err, "frequency")
	}
	if info.Cumulative, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return Info{}, errors.Wrap(err, "cumulative frequency")
	}
	if info.Rank, err = strconv.Atoi(fields[3]); err != nil {
		return Info{}, errors.Wrap(err, "rank")
	}
	return info, nil
}

// Load reads name data from r into a new name map. Blank lines are skipped.
// Malformed lines and duplicate names are reported together with their line number.
func Load(r io.Reader) (*bst.Map[string, Info], error) {
	m := NewMap()
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		info, err := Parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineno)
		}
		if err = m.Add(info.Name, info); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineno)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading name data")
	}
	tracer().Infof("loaded %d lines of name data, tree height is %d", lineno, m.Height())
	return m, nil
}

// LoadFile reads name data from a file.
func LoadFile(path string) (*bst.Map[string, Info], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening name data")
	}
	defer f.Close()
	m, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return m, nil
}

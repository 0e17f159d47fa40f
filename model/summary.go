package model

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DefaultOutput is where results land when nothing else is configured
const DefaultOutput = "results/posterior_quantities.json"

// ParamSummary is the posterior summary for one scalar parameter
type ParamSummary struct {
	Name string  `json:"-"`
	P10  float64 `json:"10p"`
	Mean float64 `json:"mean"`
	P90  float64 `json:"90p"`
}

// Summary is the result of a run: one block per parameter (in a fixed order)
// plus the posterior probability that price elasticity is negative.
type Summary struct {
	Params               []ParamSummary
	PosteriorProbability float64
}

// Param returns the named parameter summary
func (s *Summary) Param(name string) (ParamSummary, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamSummary{}, false
}

// MarshalJSON writes parameters as keys in their stored order, followed by
// posterior_probability
func (s *Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for _, p := range s.Params {
		key, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		buf.WriteByte(',')
	}

	prob, err := json.Marshal(s.PosteriorProbability)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"posterior_probability":`)
	buf.Write(prob)
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// WriteFile writes the summary as indented JSON. The containing directory is
// created if needed, and the file only appears once it is completely written.
func (s *Summary) WriteFile(filename string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return errors.Wrap(err, "Could not encode summary")
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "Could not create output dir %s", dir)
	}

	tmp, err := ioutil.TempFile(dir, ".summary-*")
	if err != nil {
		return errors.Wrapf(err, "Could not create temp file in %s", dir)
	}
	defer os.Remove(tmp.Name()) // no-op after the rename

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "Could not chmod %s", tmp.Name())
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "Could not write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "Could not close %s", tmp.Name())
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return errors.Wrapf(err, "Could not move results to %s", filename)
	}

	return nil
}

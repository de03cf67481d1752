/* Copyright 2018 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tools

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Comcast/trindi/ibis"
)

var inline = regexp.MustCompile(`%inline *\("([^"]*)"\)`)

// Inline replaces '%inline("NAME")' with f(NAME).
//
// Every line of the replacement after the first gets the same
// indentation as the line with the directive, so a directive can sit
// in a YAML block scalar:
//
//	doc: |
//	  %inline("travel.md")
func Inline(bs []byte, f func(string) ([]byte, error)) ([]byte, error) {
	acc := make([]byte, 0, len(bs))
	for _, line := range bytes.SplitAfter(bs, []byte{'\n'}) {
		locs := inline.FindAllSubmatchIndex(line, -1)
		if locs == nil {
			acc = append(acc, line...)
			continue
		}
		indent := line[:len(line)-len(bytes.TrimLeft(line, " \t"))]
		i := 0
		for _, loc := range locs {
			acc = append(acc, line[i:loc[0]]...)
			name := string(line[loc[2]:loc[3]])
			replacement, err := f(name)
			if err != nil {
				return nil, fmt.Errorf("inline %s: %w", name, err)
			}
			replacement = bytes.TrimRight(replacement, "\n")
			replacement = bytes.Replace(replacement, []byte{'\n'}, append([]byte{'\n'}, indent...), -1)
			acc = append(acc, replacement...)
			i = loc[1]
		}
		acc = append(acc, line[i:]...)
	}
	return acc, nil
}

// ReadFileWithInlines is a replacement for ioutil.ReadFile that
// Inline()s files relative to the file's directory.
func ReadFileWithInlines(filename string) ([]byte, error) {
	bs, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(filename)
	f := func(name string) ([]byte, error) {
		return ioutil.ReadFile(dir + string(os.PathSeparator) + name)
	}

	return Inline(bs, f)
}

// LoadDomain is ibis.LoadDomain with inlines.
func LoadDomain(filename string) (*ibis.StdDomain, error) {
	src, err := ReadFileWithInlines(filename)
	if err != nil {
		return nil, err
	}
	d, err := ibis.ParseDomain(src)
	if err != nil {
		return nil, fmt.Errorf("domain %s: %w", filename, err)
	}
	return d, nil
}

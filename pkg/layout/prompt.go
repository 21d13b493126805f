// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package layout

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"
)

// Question is asked when no folder is given on the command line
const Question = "Where to continue work?"

// 💬 Prompter asks the user for a folder
type Prompter interface {
	Prompt(ctx context.Context, question string) (string, error)
}

// TerminalPrompter asks on the terminal. When In is not a terminal it prints
// the question to Out and reads a single line instead.
// Zero values mean os.Stdin and os.Stdout.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Prompt implements Prompter
func (p TerminalPrompter) Prompt(ctx context.Context, question string) (string, error) {
	in, out := p.In, p.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		answer, err := pterm.DefaultInteractiveTextInput.Show(question)
		if err != nil {
			return "", errors.Errorf("reading answer: %w", err)
		}
		return answer, nil
	}

	return readLine(in, out, question)
}

// readLine asks once and reads up to the end of the line. Input that ends
// before any answer means no folder was given.
func readLine(in io.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprintf(out, "%s ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Errorf("reading answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(out)
		return "", ErrNoDirectory
	}

	return line, nil
}

// 🎯 Ask resolves folder, prompting for it when empty
func Ask(ctx context.Context, p Prompter, base, folder string) (string, error) {
	if folder == "" && p != nil {
		answer, err := p.Prompt(ctx, Question)
		if err != nil {
			return "", err
		}
		folder = answer
	}
	return Root(base, folder)
}

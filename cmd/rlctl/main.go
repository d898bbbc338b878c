/*
Rlctl starts an interactive relang session for building and manipulating
regular-language objects.

It reads commands from stdin, each operating on a named item held in an
in-memory library, and prints the result to stdout. Items may be loaded from
or saved to a .rll library file.

Usage:

	rlctl [flags]

The flags are:

	-v, --version
		Give the current version of relang and then exit.

	-f, --file FILE
		Load the given .rll library file at startup and save back to it on
		"SAVE" with no argument.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input even if launched in
		a tty with stdin and stdout.

Once a session has started, each line of input is parsed as a single command.
Type "HELP" for a list of commands. Type "QUIT" to exit.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/dekarrin/relang/internal/automaton"
	"github.com/dekarrin/relang/internal/grammar"
	"github.com/dekarrin/relang/internal/input"
	"github.com/dekarrin/relang/internal/regex"
	"github.com/dekarrin/relang/internal/rlfmt"
	"github.com/dekarrin/relang/internal/rlio"
	"github.com/dekarrin/relang/internal/stitch"
	"github.com/dekarrin/relang/internal/version"
)

const (
	ExitSuccess = iota
	ExitSessionError
	ExitInitError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	flagFile    = pflag.StringP("file", "f", "", "A .rll library file to load at startup and save back to")
	forceDirect = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
)

type commandReader interface {
	ReadCommand() (string, error)
	Close() error
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	lib := rlio.NewLibrary()
	if *flagFile != "" {
		data, err := os.ReadFile(*flagFile)
		if err == nil {
			lib, err = rlio.LoadLibrary(data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
				returnCode = ExitInitError
				return
			}
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	reader, err := newCommandReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer reader.Close()

	sess := &session{lib: lib, out: os.Stdout, file: *flagFile}

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			if err == io.EOF {
				return
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitSessionError
			return
		}

		if sess.dispatch(line) {
			return
		}
	}
}

func newCommandReader() (commandReader, error) {
	if *forceDirect || !isatty.IsTerminal(os.Stdin.Fd()) {
		return input.NewDirectReader(os.Stdin), nil
	}
	return input.NewInteractiveReader()
}

// session holds the in-memory library being edited and dispatches commands
// against it.
type session struct {
	lib  *rlio.Library
	out  io.Writer
	file string
}

// dispatch runs a single command line. It returns true if the session should
// end.
func (s *session) dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	verb := strings.ToUpper(fields[0])
	args := fields[1:]

	switch verb {
	case "QUIT", "EXIT":
		return true
	case "HELP":
		s.help()
	case "LIST":
		s.list()
	case "REGEX":
		s.defineRegex(args)
	case "GRAMMAR":
		s.defineGrammar(args)
	case "AUTOMATON":
		s.showAutomaton(args)
	case "UNION", "CONCAT", "INTERSECT", "DIFFERENCE":
		s.binaryOp(verb, args)
	case "STAR", "REVERSE", "COMPLEMENT", "COMPLETE", "DETERMINIZE", "MINIMIZE":
		s.unaryOp(verb, args)
	case "EVALUATE":
		s.evaluate(args)
	case "GENSENTENCES":
		s.genSentences(args)
	case "TOGRAMMAR":
		s.toGrammar(args)
	case "SAVE":
		s.save(args)
	case "LOAD":
		s.load(args)
	default:
		fmt.Fprintf(s.out, "unknown command %q; type HELP for a list\n", fields[0])
	}

	return false
}

func (s *session) help() {
	fmt.Fprint(s.out, ""+
		"REGEX name PATTERN            define name as a regex\n"+
		"GRAMMAR name                  define name from grammar rules read until a blank line\n"+
		"AUTOMATON name                show the automaton for name\n"+
		"UNION/CONCAT/INTERSECT/DIFFERENCE dest a b   combine a and b into dest\n"+
		"STAR/REVERSE/COMPLEMENT/COMPLETE/DETERMINIZE/MINIMIZE dest a   transform a into dest\n"+
		"EVALUATE name SENTENCE        check whether name accepts SENTENCE\n"+
		"GENSENTENCES name N           print up to N accepted sentences of name\n"+
		"TOGRAMMAR name                print name as a regular grammar\n"+
		"LIST                          list all named items\n"+
		"SAVE [FILE]                   save the library to FILE (or the file opened with -f)\n"+
		"LOAD FILE                     load FILE, replacing the current library\n"+
		"QUIT                          end the session\n")
}

func (s *session) list() {
	for name := range s.lib.Regexes {
		fmt.Fprintf(s.out, "%s: regex\n", name)
	}
	for name := range s.lib.Grammars {
		fmt.Fprintf(s.out, "%s: grammar\n", name)
	}
	for name := range s.lib.Automata {
		fmt.Fprintf(s.out, "%s: automaton\n", name)
	}
}

func (s *session) defineRegex(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "usage: REGEX name PATTERN")
		return
	}
	name, pattern := args[0], strings.Join(args[1:], " ")
	if _, err := regex.Parse(pattern); err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	s.lib.Regexes[name] = pattern
	fmt.Fprintf(s.out, "%s defined\n", name)
}

func (s *session) defineGrammar(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "usage: GRAMMAR name")
		return
	}
	fmt.Fprintln(s.out, "enter production rules, one per line, then a blank line to finish:")
	var lines []string
	buf := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			for _, l := range strings.Split(chunk, "\n") {
				if strings.TrimSpace(l) == "" {
					goto done
				}
				lines = append(lines, l)
			}
		}
		if err != nil {
			break
		}
	}
done:
	src := strings.Join(lines, "\n")
	if _, err := grammar.Parse(src); err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	s.lib.Grammars[args[0]] = src
	fmt.Fprintf(s.out, "%s defined\n", args[0])
}

func (s *session) resolve(name string) (*automaton.FiniteAutomaton, error) {
	if src, ok := s.lib.Regexes[name]; ok {
		tree, err := regex.Parse(src)
		if err != nil {
			return nil, err
		}
		return stitch.ToDFA(tree), nil
	}
	if src, ok := s.lib.Grammars[name]; ok {
		g, err := grammar.Parse(src)
		if err != nil {
			return nil, err
		}
		return g.ToAutomaton(), nil
	}
	if fa, ok := s.lib.Automata[name]; ok {
		return fa, nil
	}
	return nil, fmt.Errorf("no item named %q", name)
}

func (s *session) showAutomaton(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: AUTOMATON name")
		return
	}
	fa, err := s.resolve(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	fmt.Fprint(s.out, rlfmt.Automaton(fa))
}

func (s *session) binaryOp(verb string, args []string) {
	if len(args) != 3 {
		fmt.Fprintf(s.out, "usage: %s dest a b\n", verb)
		return
	}
	dest, aName, bName := args[0], args[1], args[2]

	a, err := s.resolve(aName)
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	b, err := s.resolve(bName)
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}

	var result *automaton.FiniteAutomaton
	switch verb {
	case "UNION":
		result = automaton.Union(a, b)
	case "CONCAT":
		result = automaton.Concatenate(a, b)
	case "INTERSECT":
		result = automaton.Intersection(a, b)
	case "DIFFERENCE":
		result = automaton.Difference(a, b)
	}

	s.lib.Automata[dest] = result
	fmt.Fprintf(s.out, "%s defined\n", dest)
}

func (s *session) unaryOp(verb string, args []string) {
	if len(args) != 2 {
		fmt.Fprintf(s.out, "usage: %s dest a\n", verb)
		return
	}
	dest, aName := args[0], args[1]

	a, err := s.resolve(aName)
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}

	var result *automaton.FiniteAutomaton
	switch verb {
	case "STAR":
		result = automaton.KleeneStar(a)
	case "REVERSE":
		result = automaton.Reverse(a)
	case "COMPLEMENT":
		result = automaton.Complement(a)
	case "COMPLETE":
		result = a.Copy()
		result.Complete()
	case "DETERMINIZE":
		result = a.Determinize()
	case "MINIMIZE":
		det := a.Determinize()
		min, err := det.Minimize()
		if err != nil {
			fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
			return
		}
		result = min
	}

	s.lib.Automata[dest] = result
	fmt.Fprintf(s.out, "%s defined\n", dest)
}

func (s *session) evaluate(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "usage: EVALUATE name SENTENCE")
		return
	}
	fa, err := s.resolve(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	sentence, err := automaton.NewSentence(strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	if fa.Evaluate(sentence) {
		fmt.Fprintln(s.out, "ACCEPTED")
	} else {
		fmt.Fprintln(s.out, "REJECTED")
	}
}

func (s *session) genSentences(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "usage: GENSENTENCES name N")
		return
	}
	fa, err := s.resolve(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %q is not a number\n", args[1])
		return
	}
	fmt.Fprint(s.out, rlfmt.Sentences(fa, n))
}

func (s *session) toGrammar(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: TOGRAMMAR name")
		return
	}
	fa, err := s.resolve(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	g := grammar.FromAutomaton(fa)
	fmt.Fprint(s.out, rlfmt.Grammar(g))
}

func (s *session) save(args []string) {
	path := s.file
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		fmt.Fprintln(s.out, "usage: SAVE FILE (no file was given at startup)")
		return
	}

	data, err := s.lib.Save()
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	if err := os.WriteFile(path, data, 0660); err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	fmt.Fprintf(s.out, "saved to %s\n", path)
}

func (s *session) load(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: LOAD FILE")
		return
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	lib, err := rlio.LoadLibrary(data)
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %s\n", err.Error())
		return
	}
	s.lib = lib
	s.file = args[0]
	fmt.Fprintf(s.out, "loaded %s\n", args[0])
}

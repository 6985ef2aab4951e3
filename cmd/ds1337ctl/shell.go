package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/shlex"
)

const prompt = "ds1337> "

// runShell reads one command per line until EOF or "quit". Errors are
// reported and the shell carries on.
func runShell(e *env, in io.Reader) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(e.out, prompt)
	for sc.Scan() {
		args, err := shlex.Split(sc.Text())
		switch {
		case err != nil:
			fmt.Fprintf(e.out, "error: %v\n", err)
		case len(args) == 0:
		case args[0] == "quit" || args[0] == "exit":
			return nil
		case args[0] == "shell":
			fmt.Fprintln(e.out, "error: already in a shell")
		default:
			if err := dispatch(e, args); err != nil {
				fmt.Fprintf(e.out, "error: %v\n", err)
			}
		}
		fmt.Fprint(e.out, prompt)
	}
	return sc.Err()
}

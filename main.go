package main

import (
	"fmt"
	"os"
)

func CheckError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func Warn(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, fmt.Sprintf("[WARN]: "+format, args...))
}

func main() {
	configureCliCommands()
}

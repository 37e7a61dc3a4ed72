package main

import (
	"fmt"
	"log"
	"os"
)

// Invoked by "go generate" in packages that use newError. It writes an
// errors.generated.go binding newError to the package's import path.
func main() {
	pkg := os.Getenv("GOPACKAGE")
	if pkg == "" {
		log.Fatalln("errorgen: GOPACKAGE not set, run through go generate")
	}

	file, err := os.Create("errors.generated.go")
	if err != nil {
		log.Fatalf("errorgen: failed to create file: %v", err)
	}
	defer file.Close()

	fmt.Fprintf(file, `package %s

import "github.com/simophin/cpxy/common/errors"

type errorPathHolder struct {
}

func newError(msg string, args ...interface{}) errors.Error {
	return errors.New(msg, args...).WithPath(errorPathHolder{})
}
`, pkg)
}

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryName = "wordwise"

var Default = Build

// Build compiles the wordwise binary into ./bin.
func Build() error {
	mg.Deps(Vet)
	fmt.Println("Building", binaryName)
	return sh.RunV("go", "build", "-o", filepath.Join("bin", binaryName), "./cmd/wordwise")
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs the binary into GOPATH/bin.
func Install() error {
	mg.Deps(Test)
	fmt.Println("Installing", binaryName)
	return sh.RunV("go", "install", "./cmd/wordwise")
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning")
	return os.RemoveAll("bin")
}

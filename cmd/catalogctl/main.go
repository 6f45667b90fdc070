// Command catalogctl maintains the component catalog and checks builds
// from the command line.
package main

func main() {
	Execute()
}

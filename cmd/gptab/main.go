// Command gptab inspects Guitar Pro tablature files.
package main

func main() {
	Execute()
}

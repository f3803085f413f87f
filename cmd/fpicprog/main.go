// Command fpicprog generates and runs PIC ICSP programming sequences.
package main

func main() {
	Execute()
}

// Command rchidrun runs scripts in any supported language by executing the
// language's interpreter compiled to WebAssembly.
package main

func main() {
	Execute()
}

// Command montage inspects, converts and serves timeline documents.
package main

func main() {
	Execute()
}

// Command tiranga draws the Indian national flag in a window.
// Close the window or press Escape to exit.
package main

import (
	"log"
	"runtime"

	"github.com/soypat/tiranga"
	"github.com/soypat/tiranga/glrender"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	err := glrender.Run(glrender.DefaultWindowConfig(), tiranga.DefaultChakraConfig())
	if err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"fmt"
	"strings"
	"time"
)

const typewriterDelay = 30 * time.Millisecond

// typewriterPrint streams a reply character by character, pausing a
// little longer on punctuation so the pacing feels natural.
func typewriterPrint(text string) {
	fmt.Printf("\n%s ", logo)

	for _, r := range text {
		fmt.Print(string(r))
		switch {
		case strings.ContainsRune(",，;；:：", r):
			time.Sleep(typewriterDelay * 2)
		case strings.ContainsRune(".。!！?？", r):
			time.Sleep(typewriterDelay * 3)
		case r == '\n':
			// No pause on line breaks.
		default:
			time.Sleep(typewriterDelay)
		}
	}
	fmt.Println()
	fmt.Println()
}

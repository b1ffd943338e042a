package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the intake banner in a calm teal-to-blue scheme.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String("  _       _        _        ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String(" (_)_ __ | |_ __ _| | _____ ").Foreground(p.Color("#22d3ee"))
	s3 := termenv.String(" | | '_ \\| __/ _` | |/ / _ \\").Foreground(p.Color("#38bdf8"))
	s4 := termenv.String(" | | | | | || (_| |   <  __/").Foreground(p.Color("#60a5fa"))
	s5 := termenv.String(" |_|_| |_|\\__\\__,_|_|\\_\\___|").Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}

// PrintCrisisResources prints the 24/7 support block shown when the crisis
// detector flags a response. Shown immediately, never gated on navigation.
func PrintCrisisResources() {
	p := termenv.ColorProfile()
	header := termenv.String("Immediate support is available").Foreground(p.Color("#f87171")).Bold()

	fmt.Println()
	fmt.Println(header)
	fmt.Println("  What is happening to you is not okay, and help is available.")
	fmt.Println("  Emergency:                 111 (NZ) / 911 (US)")
	fmt.Println("  Sexual Violence Helpline:  0800 HELP 123")
	fmt.Println("  Crisis Text Line:          Text HELP to 4357")
	fmt.Println("  Safe to Talk:              0800 044 334")
	fmt.Println()
}

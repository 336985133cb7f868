package lexis_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jcalabro/lexis"
	"github.com/jcalabro/lexis/cdn"
)

// This example demonstrates a filter in front of an exact word server.
func Example() {
	server := cdn.New()
	server.AddWord("apple")
	server.AddWord("banana")

	f, err := lexis.NewDefault(3, server)
	if err != nil {
		panic(err)
	}
	f.Add("apple")
	f.Add("banana")

	fmt.Println("apple possibly:", f.PossiblyContains("apple"))

	ok, _ := f.CertainlyContains("apple")
	fmt.Println("apple certainly:", ok)

	ok, _ = f.CertainlyContains("grape")
	fmt.Println("grape certainly:", ok)

	// Output:
	// apple possibly: true
	// apple certainly: true
	// grape certainly: false
}

// This example shows that a negative answer never reaches the server.
func Example_serverUsage() {
	server := cdn.New()
	server.AddWord("cat")

	f, _ := lexis.New(1024, 2, server)

	// Nothing added yet, so every word is ruled out locally.
	for _, w := range []string{"cat", "dog", "bird"} {
		_, _ = f.CertainlyContains(w)
	}
	fmt.Println("server queries:", server.UsageCount())

	f.Add("cat")
	ok, _ := f.CertainlyContains("cat")
	fmt.Println("cat:", ok, "server queries:", server.UsageCount())

	// Output:
	// server queries: 0
	// cat: true server queries: 1
}

// This example loads a comma-separated word list.
func Example_wordList() {
	f, _ := lexis.New(4096, 3, nil)
	if err := f.AddReader(strings.NewReader("red, green, blue")); err != nil {
		panic(err)
	}

	fmt.Println("green:", f.PossiblyContains("green"))
	fmt.Println("items:", f.Count())

	// Output:
	// green: true
	// items: 3
}

// This example combines two filters built with the same parameters.
func Example_union() {
	a, _ := lexis.New(2048, 3, nil)
	b, _ := lexis.New(2048, 3, nil)
	a.Add("left")
	b.Add("right")

	u, err := lexis.Union(a, b)
	if err != nil {
		panic(err)
	}
	fmt.Println(u.PossiblyContains("left"), u.PossiblyContains("right"))

	wide, _ := lexis.New(4096, 3, nil)
	_, err = lexis.Union(a, wide)
	fmt.Println(err)

	// Output:
	// true true
	// lexis: filters have different widths: 2048 bits vs 4096 bits
}

// This example writes a filter to a stream and reads it back.
func Example_serialization() {
	f, _ := lexis.New(1024, 4, nil)
	f.Add("persisted")

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		panic(err)
	}

	var restored lexis.Filter
	if _, err := restored.ReadFrom(&buf); err != nil {
		panic(err)
	}
	fmt.Println(restored.PossiblyContains("persisted"), restored.Equal(f))

	// Output:
	// true true
}

func ExampleOptimalParams() {
	numBits, k, _ := lexis.OptimalParams(1_000, 0.01)

	fmt.Printf("bits: %d, k: %d\n", numBits, k)

	// Output:
	// bits: 9600, k: 7
}

func ExampleEstimateFalsePositiveRate() {
	rate := lexis.EstimateFalsePositiveRate(lexis.DefaultBits, 3, 5000)
	fmt.Printf("Estimated FP rate: %.2f%%\n", rate*100)

	// Output:
	// Estimated FP rate: 0.47%
}

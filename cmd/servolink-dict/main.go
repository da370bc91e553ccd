// Command servolink-dict is a tool for inspecting register dictionary files.
//
// Usage:
//
//	servolink-dict <command> [flags] <dict.xml>
//
// Commands:
//
//	validate  Parse the dictionary and report its totals
//	list      List register ids, optionally per category
//	show      Show one register in detail
//
// Examples:
//
//	# Validate a dictionary
//	servolink-dict validate drive.xml
//
//	# List registers of one category
//	servolink-dict list -cat MOTION drive.xml
//
//	# Show a register
//	servolink-dict show -reg VEL_TGT drive.xml
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/servolink-protocol/servolink-go/pkg/dict"
	"github.com/servolink-protocol/servolink-go/pkg/reg"
)

const usage = `servolink-dict - Register Dictionary Inspector

Usage:
  servolink-dict <command> [flags] <dict.xml>

Commands:
  validate  Parse the dictionary and report its totals
  list      List register ids, optionally per category
  show      Show one register in detail

Use "servolink-dict <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "validate":
		runValidate(args)
	case "list":
		runList(args)
	case "show":
		runShow(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func loadDict(fs *flag.FlagSet) *dict.Dictionary {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: dictionary path required")
		fs.Usage()
		os.Exit(1)
	}

	d, err := dict.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return d
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `servolink-dict validate - Parse the dictionary and report its totals

Usage:
  servolink-dict validate <dict.xml>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	d := loadDict(fs)

	fmt.Printf("%s: OK\n", fs.Arg(0))
	fmt.Printf("  categories: %d\n", d.CategoryCount())
	for _, catID := range d.CategoryIDs() {
		fmt.Printf("    %s: %d subcategories\n", catID, d.SubcategoryCount(catID))
	}
	fmt.Printf("  registers:  %d\n", d.RegisterCount())
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `servolink-dict list - List register ids

Usage:
  servolink-dict list [flags] <dict.xml>

Flags:
`)
		fs.PrintDefaults()
	}

	cat := fs.String("cat", "", "Only registers of this category")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	d := loadDict(fs)

	for _, id := range d.RegisterIDs() {
		r, err := d.Register(id)
		if err != nil {
			continue
		}
		if *cat != "" && r.CatID != *cat {
			continue
		}
		fmt.Printf("%-24s %#06x  %-5s %-2s\n", r.ID, r.Address, r.DType, r.Access)
	}
}

func runShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `servolink-dict show - Show one register in detail

Usage:
  servolink-dict show -reg <id> <dict.xml>

Flags:
`)
		fs.PrintDefaults()
	}

	regID := fs.String("reg", "", "Register id (required)")
	lang := fs.String("lang", "en", "Label language")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *regID == "" {
		fmt.Fprintln(os.Stderr, "Error: register id (-reg) required")
		fs.Usage()
		os.Exit(1)
	}

	d := loadDict(fs)

	r, err := d.Register(*regID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("id:      %s\n", r.ID)
	fmt.Printf("address: %#06x\n", r.Address)
	fmt.Printf("dtype:   %s\n", r.DType)
	fmt.Printf("access:  %s\n", r.Access)
	if r.Phy != reg.PhyNone {
		fmt.Printf("phy:     %s\n", r.Phy)
	}
	if r.CatID != "" {
		fmt.Printf("cat:     %s", r.CatID)
		if r.ScatID != "" {
			fmt.Printf(" / %s", r.ScatID)
		}
		fmt.Println()
	}
	if r.Default != nil {
		fmt.Printf("default: %v\n", r.Default)
	}
	if r.Range.Min != nil || r.Range.Max != nil {
		fmt.Printf("range:   [%v, %v]\n", r.Range.Min, r.Range.Max)
	}
	if label, ok := r.Label(*lang); ok {
		fmt.Printf("label:   %s\n", label)
	}
}

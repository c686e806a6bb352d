package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	gojson "github.com/goccy/go-json"

	godump "github.com/reoring/godump"
	"github.com/reoring/godump/yamlschema"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "dump":
		dumpCmd(os.Args[2:])
	case "describe":
		describeCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "godump CLI\n\nUsage:\n  godump dump -schema defs.yaml -name library.BookSchema -in data.json [-many] [-ordered]\n  godump describe -schema defs.yaml [-name library.BookSchema]\n\nNotes:\n  - Schema descriptors are YAML (see package yamlschema); input objects are JSON.")
}

func dumpCmd(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	var schemaFile, name, in string
	var many, ordered bool
	fs.StringVar(&schemaFile, "schema", "", "YAML schema descriptor file")
	fs.StringVar(&name, "name", "", "schema identifier to dump with")
	fs.StringVar(&in, "in", "", "JSON input file ('-' for stdin)")
	fs.BoolVar(&many, "many", false, "treat the input as a collection")
	fs.BoolVar(&ordered, "ordered", false, "preserve field order in the output")
	_ = fs.Parse(args)
	if schemaFile == "" || name == "" || in == "" {
		fs.Usage()
		os.Exit(2)
	}

	reg, _ := loadSchemas(schemaFile)
	def, err := reg.Resolve(name)
	if err != nil {
		fatalf("resolve %s: %v", name, err)
	}
	d, err := godump.NewIn(reg, def, godump.DumpOpt{Many: many, Ordered: ordered})
	if err != nil {
		fatalf("instantiate %s: %v", name, err)
	}

	var obj any
	if err := gojson.Unmarshal(readInput(in), &obj); err != nil {
		fatalf("read input: %v", err)
	}
	out, err := d.Dump(obj)
	if err != nil {
		fatalf("dump: %v", err)
	}
	enc, err := godump.EncodeJSONIndent(out, "  ")
	if err != nil {
		fatalf("encode: %v", err)
	}
	fmt.Println(string(enc))
}

func describeCmd(args []string) {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	var schemaFile, name string
	fs.StringVar(&schemaFile, "schema", "", "YAML schema descriptor file")
	fs.StringVar(&name, "name", "", "describe only this schema")
	_ = fs.Parse(args)
	if schemaFile == "" {
		fs.Usage()
		os.Exit(2)
	}

	reg, defs := loadSchemas(schemaFile)
	for _, def := range defs {
		if name != "" && def.Name() != name {
			continue
		}
		fmt.Println(def.Name())
		d, err := godump.NewIn(reg, def, godump.DumpOpt{})
		if err != nil {
			fatalf("instantiate %s: %v", def.Name(), err)
		}
		for _, fn := range d.FieldNames() {
			fmt.Printf("  %s\n", fn)
		}
	}
}

func loadSchemas(path string) (*godump.Registry, []*godump.Definition) {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("read schema file: %v", err)
	}
	reg := godump.NewRegistry()
	defs, err := yamlschema.Import(data, reg)
	if err != nil {
		fatalf("import schemas: %v", err)
	}
	return reg, defs
}

func readInput(path string) []byte {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatalf("read stdin: %v", err)
		}
		return data
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("read input: %v", err)
	}
	return data
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	kumi "github.com/hferry/kumi"
	"github.com/hferry/kumi/fields"
	"github.com/hferry/kumi/middleware"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "map":
		mapCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "kumi CLI\n\nUsage:\n  kumi map -mapping def.yaml -data in.json -direction marshal|serialize [-many] [-parallel N]\n  kumi validate -mapping def.yaml -data in.json [-many]\n\nNotes:\n  - The data file is decoded as YAML when it ends in .yaml/.yml, JSON otherwise.")
}

// fieldDef is one entry of the YAML mapping definition.
type fieldDef struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Source   string `yaml:"source"`
	Required *bool  `yaml:"required"`
	Default  any    `yaml:"default"`
}

type mappingDef struct {
	Fields []fieldDef `yaml:"fields"`
}

func loadMapping(path string) (*kumi.Mapping, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def mappingDef
	if err := yaml.Unmarshal(b, &def); err != nil {
		return nil, fmt.Errorf("parse mapping definition: %w", err)
	}
	m := kumi.NewMapping()
	for _, fd := range def.Fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("mapping definition: field without a name")
		}
		t, err := typeByName(fd.Type)
		if err != nil {
			return nil, err
		}
		var opts []fields.Option
		if fd.Source != "" {
			opts = append(opts, fields.Source(fd.Source))
		}
		if fd.Required != nil && !*fd.Required {
			opts = append(opts, fields.Optional())
		}
		if fd.Default != nil {
			opts = append(opts, fields.Default(fd.Default))
		}
		m.AddField(fields.New(fd.Name, t, opts...))
	}
	return m, nil
}

func typeByName(name string) (fields.Type, error) {
	switch strings.ToLower(name) {
	case "string":
		return fields.String{}, nil
	case "integer", "int":
		return fields.Integer{}, nil
	case "float", "number":
		return fields.Float{}, nil
	case "bool", "boolean":
		return fields.Bool{}, nil
	case "raw", "":
		return fields.Raw{}, nil
	}
	return nil, fmt.Errorf("mapping definition: unknown field type %q", name)
}

func dataSource(path string) (kumi.Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kumi.YAMLBytes(b), nil
	}
	return kumi.JSONBytes(b), nil
}

func mapCmd(args []string) {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	var mappingPath, dataPath, direction string
	var many bool
	var parallel int
	fs.StringVar(&mappingPath, "mapping", "", "mapping definition (YAML)")
	fs.StringVar(&dataPath, "data", "", "data document (JSON or YAML)")
	fs.StringVar(&direction, "direction", "marshal", "marshal or serialize")
	fs.BoolVar(&many, "many", false, "treat the document as a sequence of instances")
	fs.IntVar(&parallel, "parallel", 0, "process up to N instances concurrently (with -many)")
	_ = fs.Parse(args)
	if mappingPath == "" || dataPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	m, src := mustLoad(mappingPath, dataPath)
	ctx := context.Background()

	var out any
	var err error
	switch {
	case many && direction == "marshal":
		out, err = kumi.MarshalManyFrom(ctx, m, src, kumi.WithParallelism(parallel))
	case many && direction == "serialize":
		out, err = kumi.SerializeManyFrom(ctx, m, src, kumi.WithParallelism(parallel))
	case direction == "marshal":
		out, err = kumi.MarshalFrom(ctx, m, src)
	case direction == "serialize":
		out, err = kumi.SerializeFrom(ctx, m, src)
	default:
		fatalf("unknown direction %q", direction)
	}
	if err != nil {
		reportAndExit(err)
	}
	enc := j.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fatalf("encode output: %v", err)
	}
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var mappingPath, dataPath string
	var many bool
	fs.StringVar(&mappingPath, "mapping", "", "mapping definition (YAML)")
	fs.StringVar(&dataPath, "data", "", "data document (JSON or YAML)")
	fs.BoolVar(&many, "many", false, "treat the document as a sequence of instances")
	_ = fs.Parse(args)
	if mappingPath == "" || dataPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	m, src := mustLoad(mappingPath, dataPath)
	ctx := context.Background()

	doc, err := src.Decode()
	if err != nil {
		fatalf("decode data: %v", err)
	}
	if many {
		seq, ok := doc.([]any)
		if !ok {
			fatalf("-many given but the document is not a sequence")
		}
		err = kumi.ValidateMany(ctx, m, seq)
	} else {
		err = kumi.Validate(ctx, m, doc)
	}
	if err != nil {
		reportAndExit(err)
	}
	fmt.Println("ok")
}

func mustLoad(mappingPath, dataPath string) (*kumi.Mapping, kumi.Source) {
	m, err := loadMapping(mappingPath)
	if err != nil {
		fatalf("load mapping: %v", err)
	}
	src, err := dataSource(dataPath)
	if err != nil {
		fatalf("read data: %v", err)
	}
	return m, src
}

// reportAndExit prints validation failures as the JSON error payload and
// everything else (faults, defects) as a plain message.
func reportAndExit(err error) {
	if be, ok := kumi.AsBatchError(err); ok {
		writePayload(middleware.BatchErrorPayload(be))
	}
	if me, ok := kumi.AsMappingError(err); ok {
		writePayload(middleware.ErrorPayload(me))
	}
	fatalf("%v", err)
}

func writePayload(payload any) {
	enc := j.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
	os.Exit(1)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

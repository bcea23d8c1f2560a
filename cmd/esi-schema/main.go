package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/teqdruid/circt/bitvec"
	"github.com/teqdruid/circt/errors"
	"github.com/teqdruid/circt/esi/codec"
	"github.com/teqdruid/circt/hwtype"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to a TOML type description file")
		typeName    = flag.String("type", "", "Type to inspect")
		encodeExpr  = flag.String("encode", "", "Value to encode (fields ';'-separated, elements ','-separated)")
		decodeHex   = flag.String("decode", "", "Hex message to decode")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: esi-schema -config <types.toml> -type <name> [-encode values | -decode hex]")
		fmt.Fprintln(os.Stderr, "       esi-schema -config <types.toml> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		codec.SetLogger(logger)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	types, order, err := cfg.resolveAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(types, order); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *typeName == "" {
		fmt.Println("Declared types:")
		for _, name := range order {
			fmt.Printf("  %s  (%s)\n", name, types[name])
		}
		return
	}
	typ, ok := types[*typeName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %v (declared in %s: %s)\n",
			errors.NotFound(errors.PhaseSession, "type", *typeName), *configFile, strings.Join(order, ", "))
		os.Exit(1)
	}

	if err := run(typ, *encodeExpr, *decodeHex); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(typ hwtype.Type, encodeExpr, decodeHex string) error {
	session := codec.NewWithDefaults()
	enc, err := session.Encoder(typ)
	if err != nil {
		return err
	}
	ts := enc.Schema()

	if encodeExpr == "" && decodeHex == "" {
		return describe(typ, session)
	}

	if encodeExpr != "" {
		value, err := parseValue(encodeExpr, typ)
		if err != nil {
			return err
		}
		vec, err := enc.Encode(value)
		if err != nil {
			return err
		}
		fmt.Printf("%s message (%d bits):\n%s\n", ts.Name(), vec.Width(), hex.EncodeToString(vec.Bytes()))
	}

	if decodeHex != "" {
		dec, err := session.Decoder(typ)
		if err != nil {
			return err
		}
		raw, err := hex.DecodeString(strings.TrimSpace(decodeHex))
		if err != nil {
			return fmt.Errorf("decode hex: %w", err)
		}
		out, err := dec.Decode(bitvec.FromBytes(raw))
		if err != nil {
			return err
		}
		fmt.Printf("value: %s\n", formatValue(out.Value, typ))
		if out.Valid() {
			fmt.Println("message is well formed")
		} else {
			fmt.Printf("message has %d faults:\n", len(out.Faults))
			for _, f := range out.Faults {
				fmt.Printf("  %s\n", f)
			}
		}
	}
	return nil
}

// describe prints the schema, its identity, and a per-field layout
// table.
func describe(typ hwtype.Type, session *codec.Session) error {
	enc, err := session.Encoder(typ)
	if err != nil {
		return err
	}
	ts := enc.Schema()

	fmt.Printf("Type: %s\n", typ)
	size, err := ts.Size()
	if err != nil {
		return err
	}
	fmt.Printf("Size: %d bits (%d words)\n", size, size/64)
	fmt.Print("Schema: ")
	if err := ts.WriteMetadata(os.Stdout); err != nil {
		return err
	}
	fmt.Print("\n\n")
	if err := ts.Write(os.Stdout); err != nil {
		return err
	}

	node, err := ts.WireStruct()
	if err != nil {
		return err
	}
	fmt.Printf("Layout: %d data words, %d pointers\n", node.DataWordCount, node.PointerCount)
	for _, f := range node.Fields {
		if f.Slot.Type.IsPointer() {
			fmt.Printf("  %-12s pointer %d, %s\n", f.Name, f.Slot.Offset, f.Slot.Type)
		} else {
			fmt.Printf("  %-12s data bit %d, %s\n", f.Name, uint(f.Slot.Offset)*f.Slot.Type.Bits(), f.Slot.Type)
		}
	}

	fmt.Println("\nPorts:")
	for _, p := range enc.Ports() {
		fmt.Printf("  %-6s %-6s width %d\n", p.Name, p.Dir, p.Width)
	}
	return nil
}

// parseValue reads the CLI value syntax for typ: a bare integer for
// ints, ','-separated integers for arrays, ';'-separated field values
// for structs.
func parseValue(expr string, typ hwtype.Type) (codec.Value, error) {
	switch ct := hwtype.Canonical(typ).(type) {
	case hwtype.Int:
		if strings.TrimSpace(expr) == "" {
			return codec.Int{}, nil
		}
		bits, err := strconv.ParseUint(strings.TrimSpace(expr), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", expr, err)
		}
		return codec.Int{Bits: bits}, nil
	case hwtype.Array:
		var elems codec.Array
		if strings.TrimSpace(expr) != "" {
			for _, part := range strings.Split(expr, ",") {
				ev, err := parseValue(part, ct.Elem)
				if err != nil {
					return nil, err
				}
				elems = append(elems, ev)
			}
		}
		return elems, nil
	case hwtype.Struct:
		parts := strings.Split(expr, ";")
		if len(parts) != len(ct.Fields) {
			return nil, fmt.Errorf("%d field values for %d fields", len(parts), len(ct.Fields))
		}
		var sv codec.Struct
		for i, part := range parts {
			fv, err := parseValue(part, ct.Fields[i].Type)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", ct.Fields[i].Name, err)
			}
			sv = append(sv, fv)
		}
		return sv, nil
	}
	return nil, fmt.Errorf("cannot build a value of %s", typ)
}

func formatValue(v codec.Value, typ hwtype.Type) string {
	switch cv := v.(type) {
	case codec.Int:
		return fmt.Sprintf("%d", cv.Bits)
	case codec.Array:
		at, _ := hwtype.Canonical(typ).(hwtype.Array)
		parts := make([]string, len(cv))
		for i, ev := range cv {
			parts[i] = formatValue(ev, at.Elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case codec.Struct:
		st, _ := hwtype.Canonical(typ).(hwtype.Struct)
		parts := make([]string, len(cv))
		for i, fv := range cv {
			parts[i] = st.Fields[i].Name + "=" + formatValue(fv, st.Fields[i].Type)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "?"
}

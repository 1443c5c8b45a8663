// Command colstore-repl is a small interactive shell over an in-process
// catalog: create tables, append rows, run scans. It exists to exercise the
// core from the outside, the way the teacher's cmd/client talks to a SQL
// server, minus the network hop since the engine here has none.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tuannm99/colstore/internal/catalog"
	"github.com/tuannm99/colstore/internal/scan"
	"github.com/tuannm99/colstore/internal/table"
	"github.com/tuannm99/colstore/internal/types"
)

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".colstore_history"
	}
	return filepath.Join(home, ".colstore_history")
}

func main() {
	var (
		maxChunkSize = flag.Uint("max-chunk-size", table.DefaultMaxChunkSize, "default max rows per chunk for created tables")
		histPath     = flag.String("history", defaultHistoryPath(), "history file path")
	)
	flag.Parse()

	mgr := catalog.New()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "colstore> ",
		HistoryFile:     *histPath,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	repl := &repl{mgr: mgr, defaultMaxChunkSize: types.ChunkOffset(*maxChunkSize)}

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" || line == "\\q" {
			return
		}
		if err := repl.run(line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

type repl struct {
	mgr                 *catalog.Manager
	defaultMaxChunkSize types.ChunkOffset
}

func (r *repl) run(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "tables":
		for _, name := range r.mgr.TableNames() {
			fmt.Println(name)
		}
		return nil
	case "create":
		return r.create(fields[1:])
	case "insert":
		return r.insert(fields[1:])
	case "compress":
		return r.compress(fields[1:])
	case "scan":
		return r.scan(fields[1:])
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

// create <table> col1:type1 col2:type2 ...
func (r *repl) create(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: create <table> <col:type>...")
	}
	tbl := table.New(r.defaultMaxChunkSize)
	for _, spec := range args[1:] {
		parts := strings.SplitN(spec, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("bad column spec %q, want name:type", spec)
		}
		dtype, err := parseDataType(parts[1])
		if err != nil {
			return err
		}
		if err := tbl.AddColumn(parts[0], dtype); err != nil {
			return err
		}
	}
	return r.mgr.AddTable(args[0], tbl)
}

// insert <table> v1 v2 ...
func (r *repl) insert(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: insert <table> <value>...")
	}
	tbl, err := r.mgr.GetTable(args[0])
	if err != nil {
		return err
	}
	values := make([]types.AllTypeVariant, 0, len(args)-1)
	for i, raw := range args[1:] {
		dtype, err := tbl.ColumnType(types.ColumnID(i))
		if err != nil {
			return err
		}
		v, err := parseLiteral(dtype, raw)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	return tbl.Append(values)
}

// compress <table> <chunk_id>
func (r *repl) compress(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: compress <table> <chunk_id>")
	}
	tbl, err := r.mgr.GetTable(args[0])
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return err
	}
	return tbl.CompressChunk(types.ChunkID(id))
}

// scan <table> <column> <op> <literal>
func (r *repl) scan(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: scan <table> <column> <op> <literal>")
	}
	tbl, err := r.mgr.GetTable(args[0])
	if err != nil {
		return err
	}
	col, err := tbl.ColumnIDByName(args[1])
	if err != nil {
		return err
	}
	op, err := parseOp(args[2])
	if err != nil {
		return err
	}
	dtype, err := tbl.ColumnType(col)
	if err != nil {
		return err
	}
	literal, err := parseLiteral(dtype, args[3])
	if err != nil {
		return err
	}

	result, err := scan.Execute(tbl, col, op, literal)
	if err != nil {
		return err
	}
	printTable(result)
	return nil
}

func parseDataType(s string) (types.DataType, error) {
	switch s {
	case "int32":
		return types.Int32, nil
	case "int64":
		return types.Int64, nil
	case "float32":
		return types.Float32, nil
	case "float64":
		return types.Float64, nil
	case "string":
		return types.String, nil
	default:
		return 0, fmt.Errorf("unknown type %q", s)
	}
}

func parseOp(s string) (scan.Op, error) {
	switch s {
	case "=", "==":
		return scan.Eq, nil
	case "!=", "<>":
		return scan.Ne, nil
	case "<":
		return scan.Lt, nil
	case "<=":
		return scan.Le, nil
	case ">":
		return scan.Gt, nil
	case ">=":
		return scan.Ge, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}

func parseLiteral(dtype types.DataType, raw string) (types.AllTypeVariant, error) {
	switch dtype {
	case types.Int32:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return types.AllTypeVariant{}, err
		}
		return types.VariantOf(int32(v)), nil
	case types.Int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return types.AllTypeVariant{}, err
		}
		return types.VariantOf(v), nil
	case types.Float32:
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return types.AllTypeVariant{}, err
		}
		return types.VariantOf(float32(v)), nil
	case types.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.AllTypeVariant{}, err
		}
		return types.VariantOf(v), nil
	case types.String:
		return types.VariantOf(raw), nil
	default:
		return types.AllTypeVariant{}, fmt.Errorf("unsupported data type %s", dtype)
	}
}

func printTable(tbl *table.Table) {
	names := tbl.ColumnNames()
	fmt.Println(strings.Join(names, " | "))

	var rows uint64
	for cid := types.ChunkID(0); cid < tbl.ChunkCount(); cid++ {
		chunk, err := tbl.GetChunk(cid)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		for off := types.ChunkOffset(0); off < chunk.Size(); off++ {
			cells := make([]string, len(names))
			for col := range names {
				seg, err := chunk.Segment(types.ColumnID(col))
				if err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					return
				}
				v, err := seg.At(off)
				if err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					return
				}
				cells[col] = v.String()
			}
			fmt.Println(strings.Join(cells, " | "))
			rows++
		}
	}
	fmt.Printf("(%d rows)\n", rows)
}

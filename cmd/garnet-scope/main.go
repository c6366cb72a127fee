// Garnet scope inspector - lists and dumps persisted binding snapshots
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/garnet-lang/garnet/format"
	"github.com/garnet-lang/garnet/options"
	"github.com/garnet-lang/garnet/store"
)

var log = commonlog.GetLogger("garnet.scope-cli")

func main() {
	dbPath := flag.String("db", "snapshots.db", "Snapshot database path")
	configDir := flag.String("config", ".", "Directory containing garnet.toml")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: garnet-scope [options] <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Inspects binding snapshots persisted by the Garnet runtime.\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  list           List stored snapshot names\n")
		fmt.Fprintf(os.Stderr, "  show <name>    Print a snapshot's frames and locals\n")
		fmt.Fprintf(os.Stderr, "  rm <name>      Delete a snapshot\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	opts, err := options.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		log.Infof("cache limits: get=%d set=%d",
			opts.Cache.BindingLocalVariableGet, opts.Cache.BindingLocalVariableSet)
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	switch cmd := flag.Arg(0); cmd {
	case "list":
		err = runList(st)
	case "show":
		err = withNameArg(runShow, st)
	case "rm":
		err = withNameArg((*store.Store).Delete, st)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		flag.Usage()
		os.Exit(2)
	}

	if errors.Is(err, store.ErrSnapshotNotFound) {
		fmt.Fprintf(os.Stderr, "No snapshot named %q\n", flag.Arg(1))
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func withNameArg(fn func(*store.Store, string) error, st *store.Store) error {
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	return fn(st, flag.Arg(1))
}

func runList(st *store.Store) error {
	names, err := st.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runShow(st *store.Store, name string) error {
	snap, err := st.Load(name)
	if err != nil {
		return err
	}
	for depth, frame := range snap.Frames {
		fmt.Printf("frame %d:\n", depth)
		for slot, varName := range frame.Names {
			fmt.Printf("  %-20s %s\n", varName, renderValue(frame.Values[slot]))
		}
	}
	return nil
}

// renderValue prints a snapshot value, using the runtime's integer
// formatter for the numeric types CBOR decoding produces.
func renderValue(v any) string {
	switch n := v.(type) {
	case uint64:
		out, err := format.Integer('d', format.NoPadding, format.NoPadding, int64(n))
		if err == nil {
			return string(out)
		}
	case int64:
		out, err := format.Integer('d', format.NoPadding, format.NoPadding, n)
		if err == nil {
			return string(out)
		}
	case string:
		return fmt.Sprintf("%q", n)
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%v", v)
}

// saidcli computes and checks self-addressing identifiers for JSON
// documents, locally or against a running xdao-saidgrpcd.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"xdao.co/said/cidutil"
	"xdao.co/said/deriv"
	"xdao.co/said/grpcsaid"
	"xdao.co/said/sad"
	"xdao.co/said/said"
	"xdao.co/said/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "saidify":
		return cmdSaidify(args[1:], in, out, errOut)
	case "verify":
		return cmdVerify(args[1:], in, out, errOut)
	case "cid":
		return cmdCID(args[1:], in, out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "saidcli: SAID tool for JSON documents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  saidcli saidify [--label d] [--code E] [--kind JSON] [--sad] [<file>]")
	fmt.Fprintln(w, "  saidcli verify  [--label d] [--code E] [--kind JSON] [--said <said>] [<file>]")
	fmt.Fprintln(w, "  saidcli cid     [<file>]")
	fmt.Fprintln(w, "  saidcli saidify --grpc-target <host:port> [<file>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - reads the JSON document from <file>, or stdin when omitted")
	fmt.Fprintln(w, "  - JSON key order is preserved and is digest-significant")
	fmt.Fprintln(w, "  - --sad prints the full document with the SAID embedded")
	fmt.Fprintln(w, "  - cid prints the CIDv1 (raw + sha2-256) of the JSON bytes")
}

type commonFlags struct {
	label      string
	code       string
	kind       string
	grpcTarget string
}

func (c *commonFlags) add(fs *flag.FlagSet) {
	fs.StringVar(&c.label, "label", said.DefaultLabel, "SAID field key")
	fs.StringVar(&c.code, "code", string(said.DefaultCode), "derivation code")
	fs.StringVar(&c.kind, "kind", string(said.DefaultKind), "serialization kind (JSON, CBOR, MGPK)")
	fs.StringVar(&c.grpcTarget, "grpc-target", "", "delegate to a SAID gRPC server (optional)")
}

func (c *commonFlags) options() said.Options {
	return said.Options{
		Label: c.label,
		Code:  deriv.Code(c.code),
		Kind:  version.Kind(c.kind),
	}
}

func readDocument(fs *flag.FlagSet, in io.Reader, errOut io.Writer) ([]byte, bool) {
	switch fs.NArg() {
	case 0:
		b, err := io.ReadAll(in)
		if err != nil {
			fmt.Fprintf(errOut, "read stdin: %v\n", err)
			return nil, false
		}
		return b, true
	case 1:
		b, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "read %s: %v\n", fs.Arg(0), err)
			return nil, false
		}
		return b, true
	default:
		fmt.Fprintln(errOut, "at most one input file")
		return nil, false
	}
}

func cmdSaidify(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("saidify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)
	fullSAD := fs.Bool("sad", false, "print the full SAD instead of the SAID")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	doc, ok := readDocument(fs, in, errOut)
	if !ok {
		return 2
	}

	if common.grpcTarget != "" {
		client, err := grpcsaid.Dial(common.grpcTarget, grpcsaid.DialOptions{Timeout: 5 * time.Second})
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		defer client.Close()
		if *fullSAD {
			b, err := client.Saidify(doc)
			if err != nil {
				fmt.Fprintln(errOut, err)
				return 1
			}
			fmt.Fprintln(out, string(b))
			return 0
		}
		qb, err := client.Said(doc)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintln(out, qb)
		return 0
	}

	m, err := sad.FromJSON(doc)
	if err != nil {
		fmt.Fprintf(errOut, "parse document: %v\n", err)
		return 1
	}
	qb, full, err := said.Saidify(m, common.options())
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if *fullSAD {
		b, err := full.MarshalJSON()
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintln(out, string(b))
		return 0
	}
	fmt.Fprintln(out, qb)
	return 0
}

func cmdVerify(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.add(fs)
	var expect string
	prefixed := fs.Bool("prefixed", false, "also require the embedded field to equal --said")
	versioned := fs.Bool("versioned", false, "also require the version preamble to be current")
	fs.StringVar(&expect, "said", "", "expected SAID (default: the embedded field)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	doc, ok := readDocument(fs, in, errOut)
	if !ok {
		return 2
	}

	if common.grpcTarget != "" {
		client, err := grpcsaid.Dial(common.grpcTarget, grpcsaid.DialOptions{Timeout: 5 * time.Second})
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		defer client.Close()
		okv, err := client.Verify(doc)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		return reportVerify(okv, out, errOut)
	}

	m, err := sad.FromJSON(doc)
	if err != nil {
		fmt.Fprintf(errOut, "parse document: %v\n", err)
		return 1
	}
	o := common.options()
	okv, err := said.Verify(m, said.VerifyOptions{
		SAID:      expect,
		Label:     o.Label,
		Code:      o.Code,
		Kind:      o.Kind,
		Prefixed:  *prefixed,
		Versioned: *versioned,
	})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return reportVerify(okv, out, errOut)
}

func reportVerify(ok bool, out io.Writer, errOut io.Writer) int {
	if ok {
		fmt.Fprintln(out, "valid")
		return 0
	}
	fmt.Fprintln(errOut, "invalid")
	return 1
}

func cmdCID(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	doc, ok := readDocument(fs, in, errOut)
	if !ok {
		return 2
	}
	id := cidutil.CIDv1RawSHA256(doc)
	if id == "" {
		fmt.Fprintln(errOut, "cid computation failed")
		return 1
	}
	fmt.Fprintln(out, id)
	return 0
}

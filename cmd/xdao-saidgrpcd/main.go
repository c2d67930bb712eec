package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"xdao.co/said/deriv"
	"xdao.co/said/grpcsaid"
	"xdao.co/said/said"
	"xdao.co/said/version"
)

func main() {
	fs := flag.NewFlagSet("xdao-saidgrpcd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7778", "listen address")
	label := fs.String("label", said.DefaultLabel, "SAID field key")
	code := fs.String("code", string(said.DefaultCode), "derivation code")
	kind := fs.String("kind", string(said.DefaultKind), "serialization kind (JSON, CBOR, MGPK)")

	_ = fs.Parse(os.Args[1:])

	opts := said.Options{
		Label: *label,
		Code:  deriv.Code(*code),
		Kind:  version.Kind(*kind),
	}
	if _, err := deriv.SizeOf(opts.Code); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !version.KnownKind(opts.Kind) {
		fmt.Fprintf(os.Stderr, "unknown serialization kind %q\n", opts.Kind)
		os.Exit(2)
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcsaid.RegisterSAIDServer(s, &grpcsaid.Server{Options: opts})

	fmt.Fprintf(os.Stderr, "xdao-saidgrpcd listening on %s (code=%s kind=%s)\n", lis.Addr().String(), opts.Code, opts.Kind)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

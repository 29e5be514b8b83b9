// Command diamond encrypts and decrypts messages with the diamond-ring
// transposition cipher, locally or through a diamond server.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

const usage = `usage: diamond <command> [flags]

commands:
  encrypt   encrypt a message (-m MSG [-size N] [-rounds R] [-seed HEX] [-out FILE])
  decrypt   decrypt ciphertext (-c CT -rounds R) or a sealed file (-in FILE)
  shard     split a sealed file into erasure-coded shards
  join      rebuild a sealed file from shards
  serve     run the QUIC service
  remote    encrypt or decrypt through a running server

every command accepts -config FILE`

var errUsage = errors.New("invalid usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("diamond: ")
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "encrypt":
		return runEncrypt(rest, stdout)
	case "decrypt":
		return runDecrypt(rest, stdout)
	case "shard":
		return runShard(rest, stdout)
	case "join":
		return runJoin(rest, stdout)
	case "serve":
		return runServe(rest)
	case "remote":
		return runRemote(rest, stdout)
	case "help", "-h", "-help", "--help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/tink/go/keyset"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vdparikh/classical"
	"github.com/vdparikh/classical/internal/config"
	"github.com/vdparikh/classical/tinkclassical"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

type cipherFlags struct {
	Cipher    string `help:"Cipher to use (see 'classical list')." short:"c"`
	Alphabet  string `help:"Alphabet name (latin, cyrillic) or a literal symbol list."`
	A         int    `help:"Affine multiplier." name:"a"`
	B         int    `help:"Affine shift." name:"b"`
	Key       string `help:"Key for vigenere and xor, or digits for gronsfeld." short:"k"`
	Digits    []int  `help:"Gronsfeld key digits, comma separated."`
	Rails     int    `help:"Rail fence rail count."`
	Size      int    `help:"Turning grille side length."`
	BlockSize int    `help:"Reverser block size."`
	Shrinking bool   `help:"Shrink reverser blocks by one after each block."`
	Shift     int    `help:"Polybius board shift."`
	Offset    int    `help:"Pi digit offset, 1 is the first digit after the point."`
	Profile   string `help:"Use a cipher profile from the configuration." short:"p"`
}

func (f cipherFlags) params() classical.Params {
	return classical.Params{
		Cipher:    f.Cipher,
		Alphabet:  f.Alphabet,
		A:         f.A,
		B:         f.B,
		Key:       f.Key,
		Digits:    f.Digits,
		Rails:     f.Rails,
		Size:      f.Size,
		BlockSize: f.BlockSize,
		Shrinking: f.Shrinking,
		Shift:     f.Shift,
		Offset:    f.Offset,
	}
}

type transformCmd struct {
	Flags  cipherFlags `embed:""`
	Keyset string      `help:"Load the cipher from a keyset file." type:"existingfile"`
	Text   []string    `arg:"" optional:"" help:"Text to process. Read from standard input when omitted."`
}

type CLI struct {
	Debug      bool   `help:"Whether to enable debug logging."`
	ConfigFile string `help:"Configuration file." name:"config" type:"path"`

	Encode transformCmd `cmd:"" help:"Encode text."`
	Decode transformCmd `cmd:"" help:"Decode text."`

	List struct {
	} `cmd:"" help:"List the available ciphers and configured profiles."`

	Keyset struct {
		Create struct {
			Flags  cipherFlags `embed:""`
			Output string      `help:"Keyset file to write." short:"o" required:"" type:"path"`
		} `cmd:"" help:"Store a cipher configuration in a keyset file."`

		Show struct {
			File string `arg:"" help:"Keyset file." type:"existingfile"`
		} `cmd:"" help:"Print the cipher configuration stored in a keyset file."`
	} `cmd:"" help:"Manage keyset files."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("classical"),
		kong.Description("encode and decode text with classical ciphers"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if err := run(ctx.Command(), &cli, os.Stdin, os.Stdout); err != nil {
		writeError(err)
	}
}

func run(command string, cli *CLI, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(cli.ConfigFile)
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	if cli.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch command {
	case "encode", "encode <text>":
		return transformCommand(cfg, &cli.Encode, true, stdin, stdout)
	case "decode", "decode <text>":
		return transformCommand(cfg, &cli.Decode, false, stdin, stdout)
	case "list":
		return listCommand(cfg, stdout)
	case "keyset create":
		return keysetCreateCommand(cfg, cli.Keyset.Create.Flags, cli.Keyset.Create.Output)
	case "keyset show <file>":
		return keysetShowCommand(cli.Keyset.Show.File, stdout)
	case "config":
		data, err := config.Marshal(config.Default())
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}
	return fmt.Errorf("unknown command %q", command)
}

func transformCommand(cfg config.Config, cmd *transformCmd, encoding bool, stdin io.Reader, stdout io.Writer) error {
	c, err := buildCipher(cfg, cmd.Flags, cmd.Keyset)
	if err != nil {
		return err
	}

	text, err := readInput(cmd.Text, stdin)
	if err != nil {
		return err
	}

	var out string
	if encoding {
		out, err = c.Encode(text)
	} else {
		out, err = c.Decode(text)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", c.Name(), err)
	}

	log.Debug().
		Str("cipher", c.Name()).
		Bool("encode", encoding).
		Int("in", len([]rune(text))).
		Int("out", len([]rune(out))).
		Msg("processed text")

	_, err = fmt.Fprintln(stdout, out)
	return err
}

func buildCipher(cfg config.Config, flags cipherFlags, keysetFile string) (classical.Cipher, error) {
	if keysetFile != "" {
		handle, err := tinkclassical.LoadKeyset(keysetFile)
		if err != nil {
			return nil, err
		}
		return tinkclassical.New(handle, classical.WithLogger(log.Logger))
	}

	p, err := resolveParams(cfg, flags)
	if err != nil {
		return nil, err
	}
	return classical.New(p, classical.WithLogger(log.Logger))
}

func resolveParams(cfg config.Config, flags cipherFlags) (classical.Params, error) {
	if flags.Profile != "" {
		return cfg.Profile(flags.Profile)
	}
	if flags.Cipher == "" {
		return classical.Params{}, errors.New("one of --cipher, --profile or --keyset is required")
	}

	p := flags.params()
	if p.Alphabet == "" {
		p.Alphabet = cfg.Alphabet
	}
	return p, nil
}

// readInput joins the text arguments, or reads all of stdin without its
// trailing line break. The result is NFC-normalized so that decomposed
// letters match alphabet symbols.
func readInput(args []string, stdin io.Reader) (string, error) {
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		text = strings.TrimRight(string(data), "\r\n")
	}
	return norm.NFC.String(text), nil
}

func listCommand(cfg config.Config, stdout io.Writer) error {
	for _, name := range classical.Names() {
		fmt.Fprintln(stdout, name)
	}
	for _, name := range cfg.ProfileNames() {
		fmt.Fprintf(stdout, "profile %s (%s)\n", name, cfg.Profiles[name].Cipher)
	}
	return nil
}

func keysetCreateCommand(cfg config.Config, flags cipherFlags, output string) error {
	p, err := resolveParams(cfg, flags)
	if err != nil {
		return err
	}
	template, err := tinkclassical.KeyTemplate(p)
	if err != nil {
		return err
	}
	if err := tinkclassical.Register(); err != nil {
		return err
	}
	handle, err := keyset.NewHandle(template)
	if err != nil {
		return fmt.Errorf("create keyset: %w", err)
	}
	if err := tinkclassical.SaveKeyset(handle, output); err != nil {
		return err
	}

	log.Info().
		Str("cipher", p.Cipher).
		Uint32("key_id", handle.KeysetInfo().GetPrimaryKeyId()).
		Str("path", output).
		Msg("keyset written")
	return nil
}

func keysetShowCommand(file string, stdout io.Writer) error {
	handle, err := tinkclassical.LoadKeyset(file)
	if err != nil {
		return err
	}
	p, err := tinkclassical.ParamsFromHandle(handle)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	return enc.Close()
}

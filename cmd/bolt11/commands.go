package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/fatih/color"
	"github.com/mdp/qrterminal/v3"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	bolt11 "github.com/BoltzExchange/go-bolt11"
	"github.com/BoltzExchange/go-bolt11/logger"
)

var headerColor = color.New(color.FgHiYellow, color.Bold)

var decodeCommand = &cli.Command{
	Name:      "decode",
	Usage:     "Decodes a payment request and prints its fields",
	ArgsUsage: "invoice",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print the decoded invoice as JSON",
		},
	},
	Action: decode,
}

func decode(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one payment request")
	}

	invoice, err := bolt11.Decode(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Infof("Decoded invoice on %s with %d tags", invoice.Network.Name,
		len(invoice.Tags))

	if ctx.Bool("json") {
		return printJson(invoiceToJson(invoice))
	}

	headerColor.Println("Invoice")
	fmt.Println("  Network:   " + invoice.Network.Name)
	fmt.Println("  Timestamp: " + invoice.TimestampString())
	fmt.Println("  Expires:   " + invoice.TimeExpireDateString())
	if invoice.MilliSat != nil {
		amount := invoice.MilliSat.String()
		if sat, ok := invoice.MilliSat.Satoshis(); ok {
			amount = fmt.Sprintf("%s (%d sat)", amount, int64(sat))
		}
		fmt.Println("  Amount:    " + amount)
	} else {
		fmt.Println("  Amount:    any (donation)")
	}
	if invoice.PayeeNodeKey != nil {
		fmt.Println("  Payee:     " +
			hex.EncodeToString(invoice.PayeeNodeKey.SerializeCompressed()))
	}

	fmt.Println()
	headerColor.Println("Tags")
	tags := table.New("Field", "Value")
	for _, tag := range invoice.Tags {
		tags.AddRow(tag.Type.Name(), formatTagValue(invoice, tag.Value))
	}
	tags.Print()

	return nil
}

func formatTagValue(invoice *bolt11.Invoice, value bolt11.TagValue) string {
	switch v := value.(type) {
	case bolt11.PaymentHash:
		return hex.EncodeToString(v[:])
	case bolt11.PaymentSecret:
		return hex.EncodeToString(v[:])
	case bolt11.PurposeCommitHash:
		return hex.EncodeToString(v[:])
	case bolt11.Payee:
		return hex.EncodeToString(v[:])
	case bolt11.Description:
		return string(v)
	case bolt11.Metadata:
		return hex.EncodeToString(v)
	case bolt11.ExpireTime:
		return fmt.Sprintf("%d seconds", uint64(v))
	case bolt11.MinFinalCltvExpiry:
		return fmt.Sprintf("%d blocks", uint64(v))
	case bolt11.FallbackAddress:
		if address, err := v.Address(invoice.Network); err == nil {
			return address.EncodeAddress()
		}
		return fmt.Sprintf("version %d, hash %s", v.Version,
			hex.EncodeToString(v.Hash))
	case bolt11.RouteHint:
		if len(v) == 0 {
			return "empty route hint"
		}
		return fmt.Sprintf("%d hops via %s", len(v),
			hex.EncodeToString(v[0].NodeID[:]))
	case bolt11.FeatureBits:
		return formatFeatureBits(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFeatureBits(features bolt11.FeatureBits) string {
	formatted := ""
	for name, pair := range features.Features {
		state := "supported"
		if pair.Required {
			state = "required"
		}
		if formatted != "" {
			formatted += ", "
		}
		formatted += fmt.Sprintf("%s (%s)", name, state)
	}
	if len(features.Extra.Bits) > 0 {
		if formatted != "" {
			formatted += ", "
		}
		formatted += fmt.Sprintf("extra bits %v", features.Extra.Bits)
	}
	if formatted == "" {
		return "none"
	}
	return formatted
}

var encodeCommand = &cli.Command{
	Name:  "encode",
	Usage: "Creates and signs a payment request",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "network",
			Value: "bitcoin",
			Usage: "Network to pay on: bitcoin, testnet, signet, regtest or simnet",
		},
		&cli.Uint64Flag{
			Name:  "msat",
			Usage: "Amount in millisatoshis",
		},
		&cli.Uint64Flag{
			Name:  "sat",
			Usage: "Amount in satoshis",
		},
		&cli.StringFlag{
			Name:     "key",
			Required: true,
			Usage:    "Private key to sign with, hex encoded",
		},
		&cli.StringFlag{
			Name:     "payment-hash",
			Required: true,
			Usage:    "Payment hash, hex encoded",
		},
		&cli.StringFlag{
			Name:     "payment-secret",
			Required: true,
			Usage:    "Payment secret, hex encoded",
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "Description of the payment purpose",
		},
		&cli.StringFlag{
			Name:  "description-hash",
			Usage: "Hash of a longer description, hex encoded",
		},
		&cli.Uint64Flag{
			Name:  "expiry",
			Usage: "Invoice validity in seconds",
		},
		&cli.BoolFlag{
			Name:  "qr",
			Usage: "Print the payment request as a QR code",
		},
	},
	Action: encode,
}

func encode(ctx *cli.Context) error {
	network, err := bolt11.ParseNetwork(ctx.String("network"))
	if err != nil {
		return err
	}

	paymentHash, err := bolt11.HexTo32Bytes(ctx.String("payment-hash"))
	if err != nil {
		return fmt.Errorf("payment hash: %w", err)
	}
	paymentSecret, err := bolt11.HexTo32Bytes(ctx.String("payment-secret"))
	if err != nil {
		return fmt.Errorf("payment secret: %w", err)
	}

	tags := []bolt11.Tag{
		bolt11.PaymentHashTag(paymentHash),
		bolt11.PaymentSecretTag(paymentSecret),
	}

	if description := ctx.String("description"); description != "" {
		tags = append(tags, bolt11.DescriptionTag(description))
	}
	if descriptionHash := ctx.String("description-hash"); descriptionHash != "" {
		hash, err := bolt11.HexTo32Bytes(descriptionHash)
		if err != nil {
			return fmt.Errorf("description hash: %w", err)
		}
		tags = append(tags, bolt11.PurposeCommitHashTag(hash))
	}
	if expiry := ctx.Uint64("expiry"); expiry != 0 {
		tags = append(tags, bolt11.ExpireTimeTag(expiry))
	}

	var options []bolt11.InvoiceOption
	if msat := ctx.Uint64("msat"); msat != 0 {
		options = append(options, bolt11.WithAmount(bolt11.MilliSatoshi(msat)))
	} else if sat := ctx.Uint64("sat"); sat != 0 {
		options = append(options, bolt11.WithAmountSat(btcutil.Amount(sat)))
	}

	privKey, err := bolt11.HexToBytes(ctx.String("key"))
	if err != nil {
		return fmt.Errorf("private key: %w", err)
	}

	invoice := bolt11.NewInvoice(network, tags, options...)
	signed, err := bolt11.SignWithProvider(invoice, privKey, bolt11.DefaultProvider)
	if err != nil {
		return err
	}

	logger.Infof("Signed invoice on %s", network.Name)
	fmt.Println(signed.PaymentRequest)

	if ctx.Bool("qr") {
		qrterminal.GenerateHalfBlock(signed.PaymentRequest,
			qrterminal.L, os.Stdout)
	}

	return nil
}

func invoiceToJson(invoice *bolt11.Invoice) map[string]any {
	tags := make([]map[string]any, 0, len(invoice.Tags))
	for _, tag := range invoice.Tags {
		tags = append(tags, map[string]any{
			"name":  tag.Type.Name(),
			"value": formatTagValue(invoice, tag.Value),
		})
	}

	result := map[string]any{
		"network":          invoice.Network.Name,
		"timestamp":        invoice.Timestamp,
		"timestamp_string": invoice.TimestampString(),
		"expire_date":      invoice.TimeExpireDateString(),
		"tags":             tags,
		"signature":        hex.EncodeToString(invoice.Signature),
		"recovery_flag":    invoice.RecoveryFlag,
		"payment_request":  invoice.PaymentRequest,
	}

	if invoice.MilliSat != nil {
		result["millisatoshis"] = uint64(*invoice.MilliSat)
		if sat, ok := invoice.MilliSat.Satoshis(); ok {
			result["satoshis"] = int64(sat)
		}
	}
	if invoice.PayeeNodeKey != nil {
		result["payee_node_key"] =
			hex.EncodeToString(invoice.PayeeNodeKey.SerializeCompressed())
	}

	return result
}

func printJson(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

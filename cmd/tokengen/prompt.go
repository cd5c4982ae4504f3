package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Wang-tianhao/bridge-tokengen/bridgetoken"
)

const defaultClientID = "device-001"

// prompter collects issuance parameters interactively
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints label and returns the trimmed answer; closed input reads as empty
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if p.in.Scan() {
		return strings.TrimSpace(p.in.Text()), nil
	}
	if err := p.in.Err(); err != nil {
		return "", err
	}
	return "", nil
}

// run asks for every parameter, using opts as the defaults
func (p *prompter) run(opts *options) (bridgetoken.Params, error) {
	fmt.Fprintln(p.out, "\n=== NATS WebSocket Bridge JWT Generator ===")
	fmt.Fprintln(p.out)

	fallbackID := opts.clientID
	if fallbackID == "" {
		fallbackID = defaultClientID
	}
	clientID, err := p.ask(fmt.Sprintf("Client ID [%s]: ", fallbackID))
	if err != nil {
		return bridgetoken.Params{}, err
	}
	if clientID == "" {
		clientID = fallbackID
	}

	presets := bridgetoken.Presets()
	fmt.Fprintln(p.out, "\nAvailable roles:")
	for i, preset := range presets {
		fmt.Fprintf(p.out, "  %d. %s: %s\n", i+1, preset.Name, preset.Description)
	}
	choice, err := p.ask(fmt.Sprintf("\nSelect role [1-%d] or enter custom: ", len(presets)))
	if err != nil {
		return bridgetoken.Params{}, err
	}
	role := bridgetoken.ParseRoleChoice(choice)

	publish, subscribe, err := p.permissions(role, clientID)
	if err != nil {
		return bridgetoken.Params{}, err
	}

	expiryHours := opts.expiryHours
	answer, err := p.ask(fmt.Sprintf("\nExpiry hours [%s]: ", strconv.FormatFloat(opts.expiryHours, 'f', -1, 64)))
	if err != nil {
		return bridgetoken.Params{}, err
	}
	if answer != "" {
		if expiryHours, err = bridgetoken.ParseExpiryHours(answer); err != nil {
			return bridgetoken.Params{}, err
		}
	}

	// Answers are not echoed, so end the last prompt line
	fmt.Fprintln(p.out)

	return bridgetoken.Params{
		ClientID:    clientID,
		Role:        role,
		Publish:     publish,
		Subscribe:   subscribe,
		ExpiryHours: expiryHours,
	}, nil
}

// permissions returns explicit pattern lists, either typed in for custom
// roles or taken from the expanded preset and optionally edited
func (p *prompter) permissions(role, clientID string) ([]string, []string, error) {
	if _, known := bridgetoken.LookupPreset(role); !known || role == bridgetoken.RoleCustom {
		fmt.Fprintln(p.out, "\nEnter publish patterns (comma-separated, empty for none):")
		fmt.Fprintln(p.out, "  Examples: telemetry.>, factory.line1.*, devices.sensor-01.data")
		pub, err := p.ask("Publish patterns: ")
		if err != nil {
			return nil, nil, err
		}

		fmt.Fprintln(p.out, "\nEnter subscribe patterns (comma-separated, empty for none):")
		sub, err := p.ask("Subscribe patterns: ")
		if err != nil {
			return nil, nil, err
		}
		return bridgetoken.SplitPatterns(pub), bridgetoken.SplitPatterns(sub), nil
	}

	publish, subscribe := bridgetoken.ResolvePermissions(role, nil, nil, clientID)
	fmt.Fprintf(p.out, "\nUsing %s preset permissions:\n", role)
	fmt.Fprintf(p.out, "  Publish: %v\n", publish)
	fmt.Fprintf(p.out, "  Subscribe: %v\n", subscribe)

	customize, err := p.ask("\nCustomize permissions? [y/N]: ")
	if err != nil {
		return nil, nil, err
	}
	if strings.ToLower(customize) != "y" {
		return publish, subscribe, nil
	}

	pub, err := p.ask(fmt.Sprintf("Publish patterns [%s]: ", strings.Join(publish, ", ")))
	if err != nil {
		return nil, nil, err
	}
	if pub != "" {
		publish = bridgetoken.SplitPatterns(pub)
	}

	sub, err := p.ask(fmt.Sprintf("Subscribe patterns [%s]: ", strings.Join(subscribe, ", ")))
	if err != nil {
		return nil, nil, err
	}
	if sub != "" {
		subscribe = bridgetoken.SplitPatterns(sub)
	}
	return publish, subscribe, nil
}

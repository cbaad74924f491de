// Package prompt holds the console implementations of the interactive
// collaborators: OTP entry, payment selection, passenger names, and the
// browser hand-off for the payment URL.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

type Stdin struct {
	reader *bufio.Reader
}

func NewStdin() *Stdin {
	return &Stdin{reader: bufio.NewReader(os.Stdin)}
}

func (s *Stdin) OTP(ctx context.Context, correction bool) (string, error) {
	if correction {
		fmt.Print("The OTP does not match. Please enter the correct OTP: ")
	} else {
		fmt.Print("Enter OTP received: ")
	}
	return s.readLine(ctx)
}

func (s *Stdin) PaymentChoice(ctx context.Context) (string, error) {
	fmt.Println("Select payment method:")
	fmt.Println("1. bKash\n2. Nagad\n3. Rocket\n4. Upay\n5. VISA\n6. Mastercard\n7. DBBL Nexus")
	fmt.Print("Enter the number corresponding to your payment method: ")
	return s.readLine(ctx)
}

func (s *Stdin) PassengerName(ctx context.Context, index int) (string, error) {
	fmt.Printf("Enter passenger %d name: ", index)
	return s.readLine(ctx)
}

func (s *Stdin) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Browser opens URLs with the platform launcher.
type Browser struct{}

func (Browser) Open(url string) error {
	fmt.Printf("Payment URL: %s\n", url)
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

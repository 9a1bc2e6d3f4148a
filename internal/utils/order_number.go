package utils

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// orderNumberAlphabet drops 0/O and 1/I so numbers survive being read aloud.
const orderNumberAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const orderNumberRandomLen = 8

// OrderNumberPattern matches ORD-<base36 millis>-<8 random symbols>.
var OrderNumberPattern = regexp.MustCompile(`^ORD-[0-9A-Z]{8,10}-[2-9A-HJ-NP-Z]{8}$`)

// OrderNumberGenerator builds human readable order numbers. The zero value
// uses the wall clock and crypto/rand.
type OrderNumberGenerator struct {
	Now    func() time.Time
	Random io.Reader
}

func (g OrderNumberGenerator) Generate() (string, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	src := g.Random
	if src == nil {
		src = rand.Reader
	}

	buf := make([]byte, orderNumberRandomLen)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("failed to read order number entropy: %w", err)
	}

	// 256 is a multiple of 32, so the modulo is unbiased.
	suffix := make([]byte, orderNumberRandomLen)
	for i, b := range buf {
		suffix[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}

	timePart := strings.ToUpper(strconv.FormatInt(now().UTC().UnixMilli(), 36))

	return fmt.Sprintf("ORD-%s-%s", timePart, suffix), nil
}

// GenerateOrderNumber uses the default generator.
func GenerateOrderNumber() (string, error) {
	return OrderNumberGenerator{}.Generate()
}

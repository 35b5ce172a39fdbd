// Package hashing provides the builtin digest transformers. All of them are
// one-way: the catalog carries no decode counterpart for a hash.
package hashing

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash/adler32"
	"hash/crc32"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"

	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
)

// Register adds every hash transformer to the catalog. Hashing an empty
// string is meaningless in this tool, so every descriptor requires
// non-empty input.
func Register(c *catalog.Catalog) error {
	descriptors := []*transform.Descriptor{
		{Name: "md5", Category: transform.Hash, Transform: MD5, Validate: transform.NonEmpty},
		{Name: "sha1", Category: transform.Hash, Transform: SHA1, Validate: transform.NonEmpty},
		{Name: "sha256", Category: transform.Hash, Transform: SHA256, Validate: transform.NonEmpty},
		{Name: "sha512", Category: transform.Hash, Transform: SHA512, Validate: transform.NonEmpty},
		{Name: "blake2s", Category: transform.Hash, Transform: BLAKE2s, Validate: transform.NonEmpty},
		{Name: "blake2b", Category: transform.Hash, Transform: BLAKE2b, Validate: transform.NonEmpty},
		{Name: "crc32", Category: transform.Hash, Transform: CRC32, Validate: transform.NonEmpty},
		{Name: "adler32", Category: transform.Hash, Transform: Adler32, Validate: transform.NonEmpty},
	}

	for _, d := range descriptors {
		if err := c.Register(d); err != nil {
			return fmt.Errorf("registering %s: %w", d.Name, err)
		}
	}
	return nil
}

// MD5 returns the 32-character hex digest.
func MD5(input string, _ transform.Options) (string, error) {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}

// SHA1 returns the 40-character hex digest.
func SHA1(input string, _ transform.Options) (string, error) {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}

// SHA256 returns the 64-character hex digest.
func SHA256(input string, _ transform.Options) (string, error) {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}

// SHA512 returns the 128-character hex digest.
func SHA512(input string, _ transform.Options) (string, error) {
	sum := sha512.Sum512([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}

// BLAKE2s returns the 256-bit BLAKE2s hex digest.
func BLAKE2s(input string, _ transform.Options) (string, error) {
	sum := blake2s.Sum256([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}

// BLAKE2b returns the 512-bit BLAKE2b hex digest.
func BLAKE2b(input string, _ transform.Options) (string, error) {
	sum := blake2b.Sum512([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}

// CRC32 returns the IEEE checksum as 8 hex characters.
func CRC32(input string, _ transform.Options) (string, error) {
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE([]byte(input))), nil
}

// Adler32 returns the checksum as 8 hex characters.
func Adler32(input string, _ transform.Options) (string, error) {
	return fmt.Sprintf("%08x", adler32.Checksum([]byte(input))), nil
}

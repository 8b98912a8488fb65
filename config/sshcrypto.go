package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

const keyBaseName = "a2ui_ed25519"

func LoadSSHPrivateKey(keyPath string) (ssh.Signer, error) {
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH key: %w", err)
	}
	return signer, nil
}

// IsSSHKeyEncrypted checks whether a key needs a passphrase without
// attempting to decrypt it.
func IsSSHKeyEncrypted(keyPath string) (bool, error) {
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return false, fmt.Errorf("failed to read SSH key: %w", err)
	}

	_, err = ssh.ParsePrivateKey(keyData)
	if err == nil {
		return false, nil
	}
	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) ||
		strings.Contains(err.Error(), "encrypted") ||
		strings.Contains(err.Error(), "passphrase") {
		return true, nil
	}
	return false, fmt.Errorf("invalid SSH key: %w", err)
}

func LoadSSHPrivateKeyWithPassphrase(keyPath, passphrase string) (ssh.Signer, error) {
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key: %w", err)
	}
	signer, err := ssh.ParsePrivateKeyWithPassphrase(keyData, []byte(passphrase))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH key (wrong passphrase?): %w", err)
	}
	return signer, nil
}

// FindSSHKeys returns private keys under ~/.ssh, the a2ui key first.
func FindSSHKeys() ([]string, error) {
	sshDir := filepath.Join(GetHomeDir(), ".ssh")
	if _, err := os.Stat(sshDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	var found []string
	for _, name := range []string{keyBaseName, "id_ed25519"} {
		keyPath := filepath.Join(sshDir, name)
		if isPrivateKey(keyPath) {
			found = append(found, keyPath)
		}
	}
	return found, nil
}

func isPrivateKey(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	content := string(data)
	return strings.Contains(content, "BEGIN") && strings.Contains(content, "PRIVATE KEY")
}

// CreateKey generates an ED25519 key pair with ssh-keygen for sealing API
// keys. An existing key is never overwritten: a dated suffix is appended.
// Returns the path of the new private key.
func CreateKey(passphrase string) (string, error) {
	sshDir := filepath.Join(GetHomeDir(), ".ssh")
	keyPath := filepath.Join(sshDir, keyBaseName)

	if FileExists(keyPath) {
		dateStr := time.Now().Format("20060102")
		counter := 1
		for {
			keyPath = filepath.Join(sshDir, fmt.Sprintf("%s_%s%02d", keyBaseName, dateStr, counter))
			if !FileExists(keyPath) {
				break
			}
			counter++
			if counter > 99 {
				return "", fmt.Errorf("exceeded maximum key creation limit for today (99)")
			}
		}
	}

	if err := os.MkdirAll(sshDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create .ssh directory: %w", err)
	}

	cmd := exec.Command("ssh-keygen", "-t", "ed25519", "-f", keyPath, "-C", "a2ui-encryption-key", "-N", passphrase)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to generate SSH key: %w\nOutput: %s", err, output)
	}
	if err := os.Chmod(keyPath, 0600); err != nil {
		return "", fmt.Errorf("failed to set key permissions: %w", err)
	}

	if Debug && DebugLog != nil {
		DebugLog.Printf("[SSH] Created encryption key at %s", keyPath)
	}
	return keyPath, nil
}

// DefaultKeyPath is where CreateKey puts its first key.
func DefaultKeyPath() string {
	return filepath.Join(GetHomeDir(), ".ssh", keyBaseName)
}

// ResolveSSHKey picks the sealing key when none is configured: the first key
// FindSSHKeys reports, otherwise a new one from CreateKey.
func ResolveSSHKey(passphrase string) (string, error) {
	keys, err := FindSSHKeys()
	if err != nil {
		return "", err
	}
	if len(keys) > 0 {
		return keys[0], nil
	}
	return CreateKey(passphrase)
}

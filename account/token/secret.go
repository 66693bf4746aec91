package token

import (
	"fmt"
	"os"
)

// DefaultSecretEnvVar names the variable deployments are expected to
// put the signing secret in.
const DefaultSecretEnvVar = "TASKBOX_TOKEN_SECRET"

// SecretFromEnv reads the signing secret from the named environment
// variable and clears it afterwards, so the secret does not linger in
// the process environment for child processes to inherit.
func SecretFromEnv(varname string, getfn func(string) string, setfn func(string, string) error) ([]byte, error) {
	if getfn == nil {
		getfn = os.Getenv
	}
	if setfn == nil {
		setfn = os.Setenv
	}
	val := getfn(varname)
	if err := setfn(varname, ""); err != nil {
		return nil, fmt.Errorf("token: unable to clear %v from the environment, cause %w", varname, err)
	}
	if len(val) == 0 {
		return nil, fmt.Errorf("token: signing secret missing, set %v before starting", varname)
	}
	return []byte(val), nil
}

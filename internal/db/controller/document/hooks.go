package document

import (
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"
)

// HashField returns a BeforeSave hook which replaces the string value of key
// by its argon2id hash. Values that already are argon2id hashes are kept.
func HashField(key string) func(map[string]any) error {
	return func(fields map[string]any) error {
		raw, ok := fields[key]
		if !ok || raw == nil {
			return nil
		}

		plain, ok := raw.(string)
		if !ok || plain == "" {
			return errors.WithStack(fmt.Errorf("%w: %s must be a non-empty string", ErrValidation, key))
		}

		if _, _, _, err := argon2id.DecodeHash(plain); err == nil {
			return nil
		}

		hash, err := argon2id.CreateHash(plain, argon2id.DefaultParams)
		if err != nil {
			return errors.Wrap(err, "failed to hash "+key)
		}

		fields[key] = hash

		return nil
	}
}

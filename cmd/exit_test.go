package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/virtualboard/vaultsite/internal/mapper"
	"github.com/virtualboard/vaultsite/internal/mapping"
)

func TestCLIErrorAndExitCode(t *testing.T) {
	assert.Equal(t, ExitCodeSuccess, ExitCode(nil))

	err := NewCLIError(ExitCodeUsage, "usage: vaultsite map")
	assert.Equal(t, ExitCodeUsage, ExitCode(err))
	assert.Equal(t, "usage: vaultsite map", err.Error())

	cause := errors.New("disk full")
	wrapped := WrapCLIError(ExitCodeFilesystem, cause)
	assert.Equal(t, ExitCodeFilesystem, ExitCode(wrapped))
	assert.True(t, errors.Is(wrapped, cause))

	assert.Equal(t, ExitCodeUnknown, ExitCode(&CLIError{Code: 0}))
	assert.Equal(t, "exit code 0", (&CLIError{}).Error())
	assert.Equal(t, ExitCodeUnknown, ExitCode(cause))
	assert.Nil(t, WrapCLIError(ExitCodeFilesystem, nil))
}

func TestClassify(t *testing.T) {
	assert.Nil(t, classify(nil))
	assert.Equal(t, ExitCodeNotFound, ExitCode(classify(fmt.Errorf("%w: m.json", mapping.ErrNotFound))))
	assert.Equal(t, ExitCodeNotFound, ExitCode(classify(fmt.Errorf("%w: vault", mapper.ErrSourceNotFound))))
	assert.Equal(t, ExitCodeInvalidMapping, ExitCode(classify(fmt.Errorf("%w: bad", mapping.ErrInvalid))))
	assert.Equal(t, ExitCodeFilesystem, ExitCode(classify(errors.New("permission denied"))))
}

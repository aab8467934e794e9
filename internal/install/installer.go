// Package install fetches, builds and lays out the emulator binaries and
// their configuration files. Every step is idempotent: re-running a failed
// install starts clean from the current host state.
package install

import (
	"context"
	"io"
	"os"
	"os/exec"

	"lteman/internal/config"
	"lteman/internal/constants"
	"lteman/internal/errors"
	"lteman/internal/logger"
)

// CommandRunner executes an external command to completion
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands via os/exec, inheriting stdout/stderr
type ExecRunner struct{}

// Run implements CommandRunner
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Installer performs the install pipeline
type Installer struct {
	cfg    *config.Config
	runner CommandRunner
	cloner Cloner
}

// New creates an installer with the production runner and cloner
func New(cfg *config.Config) *Installer {
	return &Installer{
		cfg:    cfg,
		runner: ExecRunner{},
		cloner: GitCloner{},
	}
}

// NewWithDeps creates an installer with injected collaborators
func NewWithDeps(cfg *config.Config, runner CommandRunner, cloner Cloner) *Installer {
	return &Installer{
		cfg:    cfg,
		runner: runner,
		cloner: cloner,
	}
}

// InstallPackages updates the package index and installs the build
// dependencies. Failure is fatal/operational.
func (i *Installer) InstallPackages(ctx context.Context) error {
	logger.Info("installing apt packages")
	if err := i.runner.Run(ctx, "apt-get", "-qq", "update"); err != nil {
		return errors.AptInstallFailed(err)
	}

	args := append([]string{"-y", "install"}, constants.AptPackages...)
	if err := i.runner.Run(ctx, "apt-get", args...); err != nil {
		return errors.AptInstallFailed(err)
	}
	return nil
}

// ResetEnvironment removes and recreates the working directories. Missing
// directories are fine; this is idempotent cleanup.
func (i *Installer) ResetEnvironment() error {
	for _, dir := range []string{constants.SourcePath, constants.BuildPath, constants.ConfigPath} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return err
		}
	}
	logger.Info("environment reset")
	return nil
}

// Fetch clones the emulator source at the pinned reference
func (i *Installer) Fetch(ctx context.Context) error {
	logger.WithFields(logger.Fields{
		"repo":      i.cfg.Source.RepoURL,
		"reference": i.cfg.Source.Reference,
	}).Info("cloning emulator source")

	err := i.cloner.Clone(ctx, i.cfg.Source.RepoURL, constants.SourcePath, i.cfg.Source.Reference, i.cfg.Source.Depth)
	if err != nil {
		return errors.CloneFailed(i.cfg.Source.RepoURL, err)
	}
	return nil
}

// Build compiles the eNodeB and UE binaries out of tree
func (i *Installer) Build(ctx context.Context) error {
	logger.Info("building emulator binaries")
	if err := i.runner.Run(ctx, "cmake", "-S", constants.SourcePath, "-B", constants.BuildPath); err != nil {
		return errors.BuildFailed(err)
	}
	if err := i.runner.Run(ctx, "make", "-C", constants.BuildPath, "-j", "4", "srsenb", "srsue"); err != nil {
		return errors.BuildFailed(err)
	}
	return nil
}

// CopyConfigFiles copies the example configuration files from the source
// tree into the runtime config directory
func (i *Installer) CopyConfigFiles() error {
	for name, paths := range constants.EmulatorConfigFiles {
		if err := copyFile(paths.Origin, paths.Dest); err != nil {
			return errors.ConfigCopyFailed(paths.Origin, err).WithContext("config", name)
		}
	}
	logger.Info("emulator configuration files generated")
	return nil
}

func copyFile(origin, dest string) error {
	in, err := os.Open(origin)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

package errors

import "fmt"

// Configuration Errors
func ConfigNotFound(path string) *LtemanError {
	return NewWithDetails(ErrConfigNotFound, "Configuration file not found", fmt.Sprintf("Path: %s", path))
}

func ConfigParseError(cause error) *LtemanError {
	return Wrap(ErrConfigParse, "Failed to parse configuration", cause)
}

func ConfigValidationError(field, reason string) *LtemanError {
	return NewWithDetails(ErrConfigValidation, "Configuration validation failed",
		fmt.Sprintf("Field: %s, Reason: %s", field, reason))
}

// Install pipeline Errors
func AptInstallFailed(cause error) *LtemanError {
	return Wrap(ErrAptInstallFailed, "Failed to install apt packages", cause)
}

func CloneFailed(repo string, cause error) *LtemanError {
	return WrapWithDetails(ErrCloneFailed, "Failed to clone source repository",
		fmt.Sprintf("Repository: %s", repo), cause)
}

func BuildFailed(cause error) *LtemanError {
	return Wrap(ErrBuildFailed, "Failed to build emulator binaries", cause)
}

func ConfigCopyFailed(origin string, cause error) *LtemanError {
	return WrapWithDetails(ErrConfigCopyFailed, "Failed to copy emulator configuration file",
		fmt.Sprintf("Origin: %s", origin), cause)
}

// Service Errors
func ServiceRenderFailed(name string, cause error) *LtemanError {
	return WrapWithDetails(ErrServiceRenderFailed, "Failed to render service unit",
		fmt.Sprintf("Service: %s", name), cause)
}

func ServiceControlFailed(name, action string, cause error) *LtemanError {
	return WrapWithDetails(ErrServiceControlFailed, "Service manager call failed",
		fmt.Sprintf("Service: %s, Action: %s", name, action), cause)
}

// Action Errors
func PreconditionNotMet(reason string) *LtemanError {
	return NewWithDetails(ErrPreconditionNotMet, "Precondition not met", reason)
}

func AttachTimeout(iface string) *LtemanError {
	return NewWithDetails(ErrAttachTimeout, "Timed out waiting for UE interface",
		fmt.Sprintf("Interface: %s", iface))
}

// Network Errors
func InvalidAddress(addr string) *LtemanError {
	return NewWithDetails(ErrInvalidAddress, "Not a valid IPv4 address", fmt.Sprintf("Address: %s", addr))
}

func RouteChangeFailed(cause error) *LtemanError {
	return Wrap(ErrRouteChangeFailed, "Failed to change routing table", cause)
}

// State store Errors
func StateConnectionFailed(cause error) *LtemanError {
	return Wrap(ErrStateConnection, "Failed to open state store", cause)
}

func StateQueryFailed(key string, cause error) *LtemanError {
	return WrapWithDetails(ErrStateQuery, "State store query failed",
		fmt.Sprintf("Key: %s", key), cause)
}

func StateMigrationFailed(cause error) *LtemanError {
	return Wrap(ErrStateMigration, "Failed to migrate state store schema", cause)
}

// Package api defines the request and response shapes of the devkit REST
// API (/api/v1). Field names follow the service's camelCase wire format.
// Optional fields are pointers so absence and the empty string stay distinct.
package api

// Opaque is an untyped JSON tree for payloads whose shape the service does
// not guarantee (validation details, rotate-due results, mutation echoes).
type Opaque = any

// Application is returned by the applications endpoints.
type Application struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description" yaml:"description"`
	OwnerEmail  string  `json:"ownerEmail" yaml:"ownerEmail"`
	IsActive    bool    `json:"isActive" yaml:"isActive"`
}

// CreateApplicationRequest is sent to POST /applications.
type CreateApplicationRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	OwnerEmail  string  `json:"ownerEmail"`
}

// UpdateApplicationRequest is sent to PUT /applications/{id}.
type UpdateApplicationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Configuration is one key/value entry of an environment.
type Configuration struct {
	ID            string  `json:"id" yaml:"id"`
	Key           string  `json:"key" yaml:"key"`
	Value         string  `json:"value" yaml:"value"`
	Type          string  `json:"type" yaml:"type"`
	Description   *string `json:"description" yaml:"description"`
	IsSecret      bool    `json:"isSecret" yaml:"isSecret"`
	EnvironmentID string  `json:"environmentId" yaml:"environmentId"`
}

// CreateConfigurationRequest is sent to POST /configurations.
type CreateConfigurationRequest struct {
	Key           string  `json:"key"`
	Value         string  `json:"value"`
	Type          string  `json:"type"`
	Description   *string `json:"description"`
	IsSecret      bool    `json:"isSecret"`
	EnvironmentID string  `json:"environmentId"`
}

// UpdateConfigurationRequest is sent to PUT /configurations/{id}.
type UpdateConfigurationRequest struct {
	Value       string  `json:"value"`
	Type        string  `json:"type"`
	Description *string `json:"description"`
	IsSecret    bool    `json:"isSecret"`
}

// Secret is secret metadata; the value itself is never listed.
type Secret struct {
	ID             string  `json:"id" yaml:"id"`
	Key            string  `json:"key" yaml:"key"`
	Description    *string `json:"description" yaml:"description"`
	ApplicationID  string  `json:"applicationId" yaml:"applicationId"`
	EnvironmentID  *string `json:"environmentId" yaml:"environmentId"`
	RotationPolicy string  `json:"rotationPolicy" yaml:"rotationPolicy"`
	IsActive       bool    `json:"isActive" yaml:"isActive"`
}

// SecretWithDecrypted is returned by GET /secrets/{id}/decrypt.
type SecretWithDecrypted struct {
	ID             string  `json:"id" yaml:"id"`
	Key            string  `json:"key" yaml:"key"`
	DecryptedValue string  `json:"decryptedValue" yaml:"decryptedValue"`
	ApplicationID  string  `json:"applicationId" yaml:"applicationId"`
	EnvironmentID  *string `json:"environmentId" yaml:"environmentId"`
}

// CreateSecretRequest is sent to POST /secrets. RotationPolicy is forwarded
// verbatim; the server owns its value set.
type CreateSecretRequest struct {
	Key            string  `json:"key"`
	EncryptedValue string  `json:"encryptedValue"`
	Description    *string `json:"description"`
	ApplicationID  string  `json:"applicationId"`
	EnvironmentID  *string `json:"environmentId"`
	RotationPolicy string  `json:"rotationPolicy"`
}

// RotateSecretRequest is sent to POST /secrets/{id}/rotate.
type RotateSecretRequest struct {
	NewEncryptedValue string `json:"newEncryptedValue"`
	RotatedBy         string `json:"rotatedBy"`
}

// EmptyRequest is the `{}` body of deactivate and rotate-due.
type EmptyRequest struct{}

// SecretRotation is one entry of a rotation history.
type SecretRotation struct {
	ID              string  `json:"id" yaml:"id"`
	SecretID        string  `json:"secretId" yaml:"secretId"`
	SecretKey       string  `json:"secretKey" yaml:"secretKey"`
	ApplicationID   string  `json:"applicationId" yaml:"applicationId"`
	EnvironmentID   *string `json:"environmentId" yaml:"environmentId"`
	PreviousVersion *int    `json:"previousVersion" yaml:"previousVersion"`
	NewVersion      *int    `json:"newVersion" yaml:"newVersion"`
	RotatedBy       string  `json:"rotatedBy" yaml:"rotatedBy"`
	Status          string  `json:"status" yaml:"status"`
	Reason          string  `json:"reason" yaml:"reason"`
	ErrorMessage    *string `json:"errorMessage" yaml:"errorMessage"`
	RotationDate    string  `json:"rotationDate" yaml:"rotationDate"`
}

// RotationStats summarizes rotation outcomes.
type RotationStats struct {
	TotalRotations      int64   `json:"totalRotations" yaml:"totalRotations"`
	SuccessfulRotations int64   `json:"successfulRotations" yaml:"successfulRotations"`
	FailedRotations     int64   `json:"failedRotations" yaml:"failedRotations"`
	ManualRotations     int64   `json:"manualRotations" yaml:"manualRotations"`
	AutomaticRotations  int64   `json:"automaticRotations" yaml:"automaticRotations"`
	SuccessRate         float64 `json:"successRate" yaml:"successRate"`
}

// ValidationResult lists secrets due or nearly due for rotation.
type ValidationResult struct {
	NeedsRotation []Opaque `json:"needsRotation" yaml:"needsRotation"`
	ExpiringSoon  []Opaque `json:"expiringSoon" yaml:"expiringSoon"`
	Details       Opaque   `json:"details" yaml:"details"`
}

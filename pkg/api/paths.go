package api

import (
	"net/url"
	"strconv"
)

// Prefix roots every resource path.
const Prefix = "/api/v1"

// Resource paths. Caller-supplied segments are percent-escaped.

func ApplicationsPath() string {
	return Prefix + "/applications"
}

func ApplicationPath(id string) string {
	return ApplicationsPath() + "/" + url.PathEscape(id)
}

func ConfigurationsPath() string {
	return Prefix + "/configurations"
}

func ConfigurationPath(id string) string {
	return ConfigurationsPath() + "/" + url.PathEscape(id)
}

func EnvironmentConfigurationsPath(env string) string {
	return ConfigurationsPath() + "/environment/" + url.PathEscape(env)
}

func EnvironmentConfigurationKeyPath(env, key string) string {
	return EnvironmentConfigurationsPath(env) + "/key/" + url.PathEscape(key)
}

func SecretsPath() string {
	return Prefix + "/secrets"
}

func SecretPath(id string) string {
	return SecretsPath() + "/" + url.PathEscape(id)
}

// ApplicationSecretsPath lists secrets of an application, narrowed to one
// environment when env is non-nil.
func ApplicationSecretsPath(app string, env *string) string {
	p := SecretsPath() + "/application/" + url.PathEscape(app)
	if env != nil {
		p += "/environment/" + url.PathEscape(*env)
	}
	return p
}

func DecryptSecretPath(id string) string {
	return SecretPath(id) + "/decrypt"
}

func RotateSecretPath(id string) string {
	return SecretPath(id) + "/rotate"
}

func DeactivateSecretPath(id string) string {
	return SecretPath(id) + "/deactivate"
}

func SecretRotationsPath(id string) string {
	return SecretPath(id) + "/rotations"
}

func ApplicationRotationsPath(app string) string {
	return SecretsPath() + "/application/" + url.PathEscape(app) + "/rotations"
}

func RecentRotationsPath(days int) string {
	return withQuery(SecretsPath()+"/rotations/recent", url.Values{"days": {strconv.Itoa(days)}})
}

func ValidateSecretsPath(app *string) string {
	return withQuery(SecretsPath()+"/validate", applicationQuery(app))
}

func RotationStatsPath(app *string) string {
	return withQuery(SecretsPath()+"/stats", applicationQuery(app))
}

func RotateDuePath(app *string) string {
	return withQuery(SecretsPath()+"/rotate-due", applicationQuery(app))
}

func applicationQuery(app *string) url.Values {
	if app == nil {
		return nil
	}
	return url.Values{"applicationId": {*app}}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

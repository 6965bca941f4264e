package constants

// Cabeceras HTTP propagadas entre servicios.
const (
	HeaderCorrelationID      = "Correlation-Id"
	HeaderAuthorizationToken = "Authorization-Token"
	HeaderOriginIP           = "Origin-Ip"
	HeaderOriginDevice       = "Origin-Device"
	HeaderOriginApplication  = "Origin-Application"
	HeaderSagaAction         = "Saga-Action"
	HeaderAuthorization      = "Authorization"
	HeaderSocialLogin        = "Social-Login"
)

// PropagatedHeaders son las cabeceras que se copian de la petición HTTP a los comandos.
var PropagatedHeaders = []string{
	HeaderCorrelationID,
	HeaderAuthorizationToken,
	HeaderOriginIP,
	HeaderOriginDevice,
	HeaderOriginApplication,
	HeaderSagaAction,
	HeaderAuthorization,
	HeaderSocialLogin,
}

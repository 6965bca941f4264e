package constants

// ErrorDefault es el mensaje que se devuelve al cliente cuando ocurre un error no controlado
// fuera del entorno de desarrollo.
const ErrorDefault = "Internal server error. Please try again, if the problem persists contact support."

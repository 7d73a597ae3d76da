package httperr

import "errors"

// BusinessError é um erro de regra de negócio identificado por um código estável.
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

// Is compara apenas o código, permitindo errors.Is contra as variáveis de domínio.
func (e BusinessError) Is(target error) bool {
	var be BusinessError
	if errors.As(target, &be) {
		return be.Code == e.Code
	}
	return false
}

// Wrap devolve uma cópia do erro carregando a causa interna.
func (e BusinessError) Wrap(err error) error {
	e.Err = err
	return e
}

func New(code, message string) BusinessError {
	return BusinessError{Code: code, Message: message}
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func CodeOf(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

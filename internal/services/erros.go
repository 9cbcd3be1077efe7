package services

import "errors"

// ErrIntegridadeReferencial indica exclusão bloqueada por registros dependentes.
// Controllers mapeiam este erro para uma mensagem específica em vez da
// mensagem genérica de falha de exclusão.
var ErrIntegridadeReferencial = errors.New("registro possui vínculos dependentes")

// ErrSomenteLeitura indica tentativa de alterar um registro somente leitura
var ErrSomenteLeitura = errors.New("registro é somente leitura")

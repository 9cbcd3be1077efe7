package services

import (
	"fmt"
	"strings"

	"conciliacao/server/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UsuarioService gerencia usuários do painel, inclusive a criação
// privilegiada de usuários com login (e-mail + senha)
type UsuarioService struct {
	db *gorm.DB
}

// NewUsuarioService cria uma nova instância de UsuarioService
func NewUsuarioService(db *gorm.DB) *UsuarioService {
	return &UsuarioService{db: db}
}

// NovoUsuario é o contrato da criação privilegiada de usuários
type NovoUsuario struct {
	Nome     string  `json:"nome" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Senha    string  `json:"senha" binding:"required,min=8"`
	Papel    string  `json:"papel" binding:"required"`
	RegiaoID *string `json:"regiao_id"`
	LojaID   *string `json:"loja_id"`
}

// GetUsuarios devolve todos os usuários com seus vínculos
func (s *UsuarioService) GetUsuarios() ([]models.Usuario, error) {
	var usuarios []models.Usuario
	if err := s.db.Preload("Regiao").Preload("Loja").Order("nome").Find(&usuarios).Error; err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}
	return usuarios, nil
}

// GetUsuarioByID devolve um usuário pelo ID
func (s *UsuarioService) GetUsuarioByID(id string) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := s.db.Preload("Regiao").Preload("Loja").First(&usuario, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("usuário com ID %s não encontrado: %w", id, err)
	}
	return &usuario, nil
}

// GetUsuarioByEmail devolve um usuário pelo e-mail (login)
func (s *UsuarioService) GetUsuarioByEmail(email string) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := s.db.Preload("Regiao").Preload("Loja").First(&usuario, "email = ?", strings.ToLower(email)).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

// CreateUsuario cria um usuário com login (caminho privilegiado):
// valida papel e vínculos, confere unicidade do e-mail e grava o hash da senha
func (s *UsuarioService) CreateUsuario(req *NovoUsuario) (*models.Usuario, error) {
	usuario := &models.Usuario{
		Nome:     strings.TrimSpace(req.Nome),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Papel:    models.Papel(req.Papel),
		RegiaoID: req.RegiaoID,
		LojaID:   req.LojaID,
	}

	if err := usuario.ValidarVinculos(); err != nil {
		return nil, err
	}
	if err := s.validarReferencias(usuario); err != nil {
		return nil, err
	}

	var existente models.Usuario
	if err := s.db.Where("email = ?", usuario.Email).First(&existente).Error; err == nil {
		return nil, fmt.Errorf("já existe um usuário com o e-mail '%s'", usuario.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}
	usuario.SenhaHash = string(hash)

	if err := s.db.Create(usuario).Error; err != nil {
		return nil, fmt.Errorf("erro ao criar usuário: %w", err)
	}
	return usuario, nil
}

// UpdateUsuario atualiza nome, papel e vínculos de um usuário
func (s *UsuarioService) UpdateUsuario(id string, atualizado *models.Usuario) error {
	var usuario models.Usuario
	if err := s.db.First(&usuario, "id = ?", id).Error; err != nil {
		return fmt.Errorf("usuário com ID %s não encontrado: %w", id, err)
	}

	usuario.Nome = atualizado.Nome
	usuario.Papel = atualizado.Papel
	usuario.RegiaoID = atualizado.RegiaoID
	usuario.LojaID = atualizado.LojaID

	if err := usuario.ValidarVinculos(); err != nil {
		return err
	}
	if err := s.validarReferencias(&usuario); err != nil {
		return err
	}

	// Select garante que vínculos zerados (corporativo) sejam gravados como NULL
	if err := s.db.Model(&usuario).Select("nome", "papel", "regiao_id", "loja_id").Updates(map[string]interface{}{
		"nome":      usuario.Nome,
		"papel":     usuario.Papel,
		"regiao_id": usuario.RegiaoID,
		"loja_id":   usuario.LojaID,
	}).Error; err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}
	return nil
}

// AtualizarSenha troca a senha de um usuário
func (s *UsuarioService) AtualizarSenha(id, novaSenha string) error {
	if len(novaSenha) < 8 {
		return fmt.Errorf("a senha deve ter pelo menos 8 caracteres")
	}
	var usuario models.Usuario
	if err := s.db.First(&usuario, "id = ?", id).Error; err != nil {
		return fmt.Errorf("usuário com ID %s não encontrado: %w", id, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(novaSenha), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}
	if err := s.db.Model(&usuario).Update("senha_hash", string(hash)).Error; err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}
	return nil
}

// DeleteUsuario exclui um usuário
func (s *UsuarioService) DeleteUsuario(id string) error {
	var usuario models.Usuario
	if err := s.db.First(&usuario, "id = ?", id).Error; err != nil {
		return fmt.Errorf("usuário com ID %s não encontrado: %w", id, err)
	}
	if err := s.db.Delete(&usuario).Error; err != nil {
		return fmt.Errorf("erro ao excluir usuário: %w", err)
	}
	return nil
}

// VerificarSenha confere a senha contra o hash armazenado
func (s *UsuarioService) VerificarSenha(usuario *models.Usuario, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(senha)) == nil
}

func (s *UsuarioService) validarReferencias(u *models.Usuario) error {
	if u.RegiaoID != nil && *u.RegiaoID != "" {
		var regiao models.Regiao
		if err := s.db.First(&regiao, "id = ?", *u.RegiaoID).Error; err != nil {
			return fmt.Errorf("regional com ID %s não encontrada: %w", *u.RegiaoID, err)
		}
	}
	if u.LojaID != nil && *u.LojaID != "" {
		var loja models.Loja
		if err := s.db.First(&loja, "id = ?", *u.LojaID).Error; err != nil {
			return fmt.Errorf("loja com ID %s não encontrada: %w", *u.LojaID, err)
		}
		// A regional do usuário de loja precisa bater com a da loja
		if u.RegiaoID != nil && loja.RegiaoID != nil && *u.RegiaoID != *loja.RegiaoID {
			return fmt.Errorf("a loja '%s' não pertence à regional informada", loja.Nome)
		}
	}
	return nil
}

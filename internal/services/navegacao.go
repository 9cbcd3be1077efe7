package services

import "conciliacao/server/internal/models"

// ItemNavegacao é um item do menu lateral do painel
type ItemNavegacao struct {
	Titulo string `json:"titulo"`
	Rota   string `json:"rota"`
	Icone  string `json:"icone"`
}

// NavegacaoModel é a estrutura de navegação de um papel
type NavegacaoModel struct {
	Papel models.Papel    `json:"papel"`
	Itens []ItemNavegacao `json:"itens"`
}

// MontarNavegacao é a função pura papel -> menu: cada papel vê um conjunto
// fixo de telas, sem depender de renderização para ser testada
func MontarNavegacao(papel models.Papel) NavegacaoModel {
	base := []ItemNavegacao{
		{Titulo: "Início", Rota: "/home", Icone: "home"},
		{Titulo: "Dashboard", Rota: "/dashboard", Icone: "chart"},
	}

	switch papel {
	case models.PapelCorporativo:
		return NavegacaoModel{Papel: papel, Itens: append(base,
			ItemNavegacao{Titulo: "Regionais", Rota: "/regionais", Icone: "map"},
			ItemNavegacao{Titulo: "Lojas", Rota: "/lojas", Icone: "store"},
			ItemNavegacao{Titulo: "Usuários", Rota: "/usuarios", Icone: "users"},
			ItemNavegacao{Titulo: "Upload de Vendas", Rota: "/upload-vendas", Icone: "upload"},
			ItemNavegacao{Titulo: "Histórico de Uploads", Rota: "/historico-uploads", Icone: "history"},
			ItemNavegacao{Titulo: "Gestão de Credenciais", Rota: "/gestao-credenciais", Icone: "key"},
			ItemNavegacao{Titulo: "Configurar Parâmetros", Rota: "/configurar-parametros", Icone: "settings"},
			ItemNavegacao{Titulo: "Base de Pedidos", Rota: "/base-pedidos", Icone: "list"},
		)}
	case models.PapelRegional:
		return NavegacaoModel{Papel: papel, Itens: append(base,
			ItemNavegacao{Titulo: "Lojas", Rota: "/lojas", Icone: "store"},
			ItemNavegacao{Titulo: "Histórico de Uploads", Rota: "/historico-uploads", Icone: "history"},
			ItemNavegacao{Titulo: "Base de Pedidos", Rota: "/base-pedidos", Icone: "list"},
		)}
	case models.PapelLoja:
		return NavegacaoModel{Papel: papel, Itens: append(base,
			ItemNavegacao{Titulo: "Base de Pedidos", Rota: "/base-pedidos", Icone: "list"},
		)}
	default:
		return NavegacaoModel{Papel: papel, Itens: base}
	}
}

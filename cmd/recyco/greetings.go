package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var recyGreetings = [...]string{
	"Un pot de yaourt attend dans ta cuisine. Il ne sait pas où aller.",
	"Le bac jaune a faim. Le bac vert aussi. Toi seul peux les nourrir.",
	"Trois joueurs ont trié un carton pendant que tu lisais cette phrase.",
	"Je connais la poubelle de chaque déchet. Toi, tu connais ton mot de passe ?",
	"Le verre se recycle à l'infini. Ton excuse pour ne pas jouer, non.",
	"Quelque part, une bouteille finit dans la mauvaise poubelle. Tu aurais su, toi.",
	"Ton score est actuellement de zéro. C'est réparable.",
	"Les badges ne se gagnent pas en restant devant la porte.",
	"Le bac bleu garde une place pour ton journal. Et pour toi.",
	"Une canette triée, c'est un point. Mille canettes, c'est une habitude.",
	"Je trie, tu tries, il trie. Conjugue, puis connecte-toi.",
	"Le compost n'attend personne. Les épluchures non plus.",
	"Un sac plastique met 400 ans à disparaître. Toi, 10 secondes à te connecter.",
	"Tes 7 cartes sont déjà mélangées. Il ne manque que le trieur.",
	"Le guide du tri connaît 100 déchets par cœur. Il accepte les visites.",
	"Quelqu'un vient de battre ton record. Facile : tu n'en as pas.",
	"La poubelle jaune ne juge pas. Moi un peu.",
	"Chaque erreur de tri est une leçon. Chaque bonne réponse, un point.",
	"Recycler, c'est bien. Savoir recycler, c'est un jeu.",
	"La planète compte les points. Connecte-toi, elle regarde.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("R E C Y C O")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Bien trier, ça s'apprend en jouant."`)

	attrib := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D4A017")).
		Render("— Récy")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"recyco", "Play the sorting game (interactive TUI)"},
		{"recyco login", "Sign in with email and password"},
		{"recyco register", "Create an account"},
		{"recyco logout", "Clear your session"},
		{"recyco web", "Open the game in your browser"},
		{"recyco --version", "Show version"},
		{"recyco help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n  %s\n\n  Commands:\n", title, quote, attrib)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-18s", c.cmd)), descStyle.Render(c.desc))
	}
	url := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("https://recyco.fr")
	fmt.Printf("\n  %s\n\n", url)
}

func printGreeting() {
	msg := recyGreetings[rand.IntN(len(recyGreetings))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("RECYCO")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	attrib := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D4A017")).
		Render("— Récy")

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("Pour jouer: recyco login")

	fmt.Printf("\n%s\n\n%s\n%s\n\n%s\n\n", title, quote, attrib, hint)
}

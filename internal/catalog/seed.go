package catalog

import "github.com/neestoralvz/app-anime-conexion/internal/models"

// seedAnimes is ordered by popularity; Popular serves a prefix of it.
var seedAnimes = []models.Anime{
	{
		ID:       "attack-on-titan",
		Title:    "Attack on Titan",
		Synopsis: "Humanity fights for survival against man-eating giants in a walled, post-apocalyptic world.",
		Genre:    "Action,Drama,Fantasy,Military",
		Year:     2013,
		Episodes: 87,
		ImageURL: "https://cdn.myanimelist.net/images/anime/10/47347.jpg",
	},
	{
		ID:       "death-note",
		Title:    "Death Note",
		Synopsis: "A brilliant student finds a supernatural notebook that kills anyone whose name is written in it.",
		Genre:    "Psychological,Supernatural,Thriller",
		Year:     2006,
		Episodes: 37,
		ImageURL: "https://cdn.myanimelist.net/images/anime/9/9453.jpg",
	},
	{
		ID:       "one-piece",
		Title:    "One Piece",
		Synopsis: "A rubber-limbed young pirate hunts the world's greatest treasure to become the next Pirate King.",
		Genre:    "Adventure,Comedy,Drama,Shounen",
		Year:     1999,
		Episodes: 1000,
		ImageURL: "https://cdn.myanimelist.net/images/anime/6/73245.jpg",
	},
	{
		ID:       "demon-slayer",
		Title:    "Demon Slayer",
		Synopsis: "A boy becomes a demon hunter to avenge his family and cure his demon-turned sister.",
		Genre:    "Action,Supernatural,Historical",
		Year:     2019,
		Episodes: 44,
		ImageURL: "https://cdn.myanimelist.net/images/anime/1286/99889.jpg",
	},
	{
		ID:       "my-hero-academia",
		Title:    "My Hero Academia",
		Synopsis: "In a world where nearly everyone has superpowers, a powerless boy dreams of becoming a hero.",
		Genre:    "Action,School,Superhero",
		Year:     2016,
		Episodes: 138,
		ImageURL: "https://cdn.myanimelist.net/images/anime/10/78745.jpg",
	},
	{
		ID:       "fullmetal-alchemist-brotherhood",
		Title:    "Fullmetal Alchemist: Brotherhood",
		Synopsis: "Two alchemist brothers seek the Philosopher's Stone to restore the bodies a failed experiment took.",
		Genre:    "Action,Adventure,Drama,Fantasy",
		Year:     2009,
		Episodes: 64,
		ImageURL: "https://cdn.myanimelist.net/images/anime/1223/96541.jpg",
	},
	{
		ID:       "naruto",
		Title:    "Naruto",
		Synopsis: "A mischievous young ninja seeks recognition and dreams of becoming Hokage.",
		Genre:    "Action,Adventure,Martial Arts",
		Year:     2002,
		Episodes: 220,
		ImageURL: "https://cdn.myanimelist.net/images/anime/13/17405.jpg",
	},
	{
		ID:       "spirited-away",
		Title:    "Spirited Away",
		Synopsis: "A girl must work in a magical bathhouse for spirits to free her transformed parents.",
		Genre:    "Adventure,Family,Fantasy",
		Year:     2001,
		Episodes: 1,
	},
	{
		ID:       "your-name",
		Title:    "Your Name",
		Synopsis: "Two teenagers who mysteriously swap bodies search for each other across time.",
		Genre:    "Romance,Drama,Supernatural",
		Year:     2016,
		Episodes: 1,
	},
	{
		ID:       "princess-mononoke",
		Title:    "Princess Mononoke",
		Synopsis: "A cursed prince is drawn into the struggle between forest gods and the humans consuming their land.",
		Genre:    "Adventure,Drama,Fantasy",
		Year:     1997,
		Episodes: 1,
	},
}

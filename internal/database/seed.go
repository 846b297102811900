package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// seedWords is the initial shared corpus: headword, translation, category.
// Inserted once, on the first start against an empty common_words table.
var seedWords = [][3]string{
	// Colors
	{"red", "красный", "цвет"}, {"blue", "синий", "цвет"},
	{"green", "зеленый", "цвет"}, {"yellow", "желтый", "цвет"},
	{"black", "черный", "цвет"}, {"white", "белый", "цвет"},
	{"orange", "оранжевый", "цвет"}, {"purple", "фиолетовый", "цвет"},
	{"pink", "розовый", "цвет"}, {"brown", "коричневый", "цвет"},

	// Pronouns
	{"I", "я", "местоимение"}, {"you", "ты", "местоимение"},
	{"he", "он", "местоимение"}, {"she", "она", "местоимение"},
	{"it", "оно", "местоимение"}, {"we", "мы", "местоимение"},
	{"they", "они", "местоимение"}, {"my", "мой", "местоимение"},
	{"your", "твой", "местоимение"}, {"our", "наш", "местоимение"},

	// Numbers (1-10)
	{"one", "один", "число"}, {"two", "два", "число"},
	{"three", "три", "число"}, {"four", "четыре", "число"},
	{"five", "пять", "число"}, {"six", "шесть", "число"},
	{"seven", "семь", "число"}, {"eight", "восемь", "число"},
	{"nine", "девять", "число"}, {"ten", "десять", "число"},

	// Animals
	{"cat", "кошка", "животное"}, {"dog", "собака", "животное"},
	{"bird", "птица", "животное"}, {"fish", "рыба", "животное"},
	{"horse", "лошадь", "животное"}, {"cow", "корова", "животное"},
	{"pig", "свинья", "животное"}, {"rabbit", "кролик", "животное"},
	{"lion", "лев", "животное"}, {"tiger", "тигр", "животное"},

	// Family
	{"mother", "мать", "семья"}, {"father", "отец", "семья"},
	{"brother", "брат", "семья"}, {"sister", "сестра", "семья"},
	{"son", "сын", "семья"}, {"daughter", "дочь", "семья"},
	{"grandmother", "бабушка", "семья"}, {"grandfather", "дедушка", "семья"},

	// Basic verbs
	{"go", "идти", "глагол"}, {"eat", "есть", "глагол"},
	{"drink", "пить", "глагол"}, {"sleep", "спать", "глагол"},
	{"read", "читать", "глагол"}, {"write", "писать", "глагол"},
	{"speak", "говорить", "глагол"}, {"listen", "слушать", "глагол"},
	{"love", "любить", "глагол"}, {"learn", "учить", "глагол"},

	// Advanced words
	{"abundance", "изобилие", "сложное"},
	{"benevolent", "доброжелательный", "сложное"},
	{"conundrum", "головоломка", "сложное"},
	{"diligent", "усердный", "сложное"},
	{"ephemeral", "эфемерный", "сложное"},
	{"fastidious", "привередливый", "сложное"},
}

// seedCorpus inserts the initial word set when common_words is empty.
func seedCorpus(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM common_words"); err != nil {
		return fmt.Errorf("failed to count corpus words: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	query := tx.Rebind("INSERT INTO common_words (english_word, russian_translation, word_type) VALUES (?, ?, ?)")
	for _, w := range seedWords {
		if _, err := tx.Exec(query, w[0], w[1], w[2]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to seed word %q: %w", w[0], err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit corpus seed: %w", err)
	}

	log.Printf("Seeded shared corpus with %d words", len(seedWords))
	return nil
}

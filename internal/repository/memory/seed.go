package memory

import "github.com/yourusername/trivia-catalog/internal/domain/entity"

// SampleQuestions возвращает стартовый набор вопросов для режима database.driver=memory.
// Совпадает с сидом в миграциях.
func SampleQuestions() []entity.Question {
	return []entity.Question{
		{ID: 1, Text: "What is the heaviest organ in the human body?", Answer: "The Liver", CategoryID: 1, Difficulty: 4},
		{ID: 2, Text: "Who discovered penicillin?", Answer: "Alexander Fleming", CategoryID: 1, Difficulty: 3},
		{ID: 3, Text: "Hematology is a branch of medicine involving the study of what?", Answer: "Blood", CategoryID: 1, Difficulty: 4},
		{ID: 4, Text: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", CategoryID: 6, Difficulty: 3},
		{ID: 5, Text: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", CategoryID: 6, Difficulty: 4},
		{ID: 6, Text: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", CategoryID: 5, Difficulty: 4},
		{ID: 7, Text: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", CategoryID: 5, Difficulty: 4},
		{ID: 8, Text: "What was the title of the 1990 fantasy directed by Tim Burton about a young man with multi-bladed appendages?", Answer: "Edward Scissorhands", CategoryID: 5, Difficulty: 3},
		{ID: 9, Text: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", CategoryID: 4, Difficulty: 2},
		{ID: 10, Text: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", CategoryID: 4, Difficulty: 1},
		{ID: 11, Text: "Which dung beetle was worshipped by the ancient Egyptians?", Answer: "Scarab", CategoryID: 4, Difficulty: 4},
		{ID: 12, Text: "Who invented Peanut Butter?", Answer: "George Washington Carver", CategoryID: 4, Difficulty: 2},
		{ID: 13, Text: "What is the largest lake in Africa?", Answer: "Lake Victoria", CategoryID: 3, Difficulty: 2},
		{ID: 14, Text: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", CategoryID: 3, Difficulty: 3},
		{ID: 15, Text: "The Taj Mahal is located in which Indian city?", Answer: "Agra", CategoryID: 3, Difficulty: 2},
		{ID: 16, Text: "La Giaconda is better known as what?", Answer: "Mona Lisa", CategoryID: 2, Difficulty: 3},
		{ID: 17, Text: "How many paintings did Van Gogh sell in his lifetime?", Answer: "One", CategoryID: 2, Difficulty: 4},
		{ID: 18, Text: "Which American artist was a pioneer of Abstract Expressionism, and a leading exponent of action painting?", Answer: "Jackson Pollock", CategoryID: 2, Difficulty: 2},
		{ID: 19, Text: "Which Dutch graphic artist, initials M C, was a creator of optical illusions?", Answer: "Escher", CategoryID: 2, Difficulty: 1},
	}
}

package catalog

import (
	"time"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/story"
)

const mockAudioURL = "https://www.soundjay.com/misc/sounds/bell-ringing-05.wav"

var mockCreated = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func mockAudio(id, narrator string, seconds int) *story.Audio {
	return &story.Audio{
		ID:        id,
		StoryID:   id,
		Language:  constant.English,
		URL:       mockAudioURL,
		Duration:  seconds,
		MimeType:  "audio/wav",
		Narrator:  narrator,
		CreatedAt: mockCreated,
		UpdatedAt: mockCreated,
	}
}

func mockStories() []*story.Story {
	return []*story.Story{
		{
			ID:    "1",
			Title: "The Little Star",
			Content: "Once upon a time, in a faraway galaxy, there was a little star who felt very lonely. " +
				"Every night, the little star would look down at Earth and see all the children sleeping peacefully. " +
				"The star wished it could help them have sweet dreams.\n\n" +
				"One magical night, the little star discovered it had a special power: it could sprinkle stardust " +
				"that would create beautiful dreams for children. From that night on, the little star made sure " +
				"every child had wonderful dreams filled with adventures and happiness.\n\n" +
				"And that's why we see stars twinkling in the sky. They're watching over us and making sure " +
				"we have the sweetest dreams.",
			Description: "A heartwarming story about a little star who helps children have sweet dreams.",
			Slug:        "the-little-star",
			ReadingTime: 3,
			AgeGroup:    constant.AgeToddler,
			Tags:        []string{"magic", "stars", "dreams"},
			Images: []story.Image{
				{ID: "1", Src: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400", Alt: "A beautiful starry night sky"},
				{ID: "2", Src: "https://images.unsplash.com/photo-1446776877081-d282a0f896e2?w=400", Alt: "Children sleeping peacefully", Position: 1},
			},
			Audio:     mockAudio("1", "Sarah Johnson", 180),
			CreatedAt: mockCreated,
			UpdatedAt: mockCreated,
		},
		{
			ID:    "2",
			Title: "The Brave Little Rabbit",
			Content: "In a cozy burrow deep in the forest, lived a little rabbit named Ruby. Ruby was smaller than " +
				"all the other rabbits, but she had the biggest heart. One day, when the other animals were scared " +
				"of a loud noise coming from the edge of the forest, Ruby decided to investigate.\n\n" +
				"As she hopped through the trees, Ruby discovered that the \"scary noise\" was just a family of humans " +
				"having a picnic. The children were laughing and playing, and Ruby realized there was nothing to be afraid of.\n\n" +
				"Ruby returned to her friends and told them about the kind humans. From that day on, Ruby was known " +
				"as the bravest rabbit in the forest, proving that courage comes in all sizes.",
			Description: "An inspiring tale about a small rabbit with a big heart and even bigger courage.",
			Slug:        "the-brave-little-rabbit",
			ReadingTime: 4,
			AgeGroup:    constant.AgeChildren,
			Tags:        []string{"animals", "courage", "friendship"},
			Images: []story.Image{
				{ID: "3", Src: "https://images.unsplash.com/photo-1518717758536-85ae29035b6d?w=400", Alt: "A cute little rabbit in the forest"},
			},
			Audio:     mockAudio("2", "Michael Brown", 240),
			CreatedAt: mockCreated.Add(24 * time.Hour),
			UpdatedAt: mockCreated.Add(24 * time.Hour),
		},
		{
			ID:    "3",
			Title: "The Magic Garden",
			Content: "In the heart of a bustling city, hidden behind tall buildings, there was a secret magic garden. " +
				"Only children with pure hearts could find it. The garden was filled with flowers that sang lullabies " +
				"and trees that whispered stories.\n\n" +
				"One evening, a little girl named Emma discovered the garden. As she walked through the singing flowers " +
				"and listening trees, she felt all her worries melt away. The garden taught her that magic exists " +
				"everywhere: in the kindness of others, in the beauty of nature, and in the power of imagination.\n\n" +
				"From that night on, Emma visited the magic garden whenever she needed comfort, and she learned that " +
				"the real magic was the love and wonder she carried in her heart.",
			Description: "A magical story about finding wonder and comfort in unexpected places.",
			Slug:        "the-magic-garden",
			ReadingTime: 5,
			AgeGroup:    constant.AgePreteen,
			Tags:        []string{"magic", "garden", "imagination"},
			Images: []story.Image{
				{ID: "4", Src: "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=400", Alt: "A beautiful magical garden"},
			},
			Audio:     mockAudio("3", "Emma Wilson", 300),
			CreatedAt: mockCreated.Add(48 * time.Hour),
			UpdatedAt: mockCreated.Add(48 * time.Hour),
		},
	}
}

func mockTags() []*story.Tag {
	return []*story.Tag{
		{ID: "3", Name: "Adventure", Slug: "adventure", Description: "Exciting journeys and thrilling quests", Color: "#96CEB4"},
		{ID: "2", Name: "Animals", Slug: "animals", Description: "Adventures with our furry and feathered friends", Color: "#FF6B6B"},
		{ID: "5", Name: "Classic", Slug: "classic", Description: "Timeless tales that never grow old", Color: "#4ECDC4"},
		{ID: "4", Name: "Friendship", Slug: "friendship", Description: "Stories about the power of friendship", Color: "#FFEAA7"},
		{ID: "1", Name: "Magic", Slug: "magic", Description: "Stories filled with wonder and enchantment", Color: "#DDA0DD"},
	}
}

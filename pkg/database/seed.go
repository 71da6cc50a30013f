package database

import (
	"lingua_backend/internal/model"
	"lingua_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func opts(correct string, wrong ...string) []model.ExerciseOption {
	options := []model.ExerciseOption{{Text: correct, IsCorrect: true, Order: 1}}
	for i, w := range wrong {
		options = append(options, model.ExerciseOption{Text: w, Order: i + 2})
	}
	return options
}

// DemoCatalog 演示用德语课程：两门课程、跨课程的模块前置依赖，覆盖全部题型
func DemoCatalog() []model.Course {
	return []model.Course{
		{
			Title:       "German A1.1",
			Description: "Beginner German course - first level",
			Level:       "A1_1",
			Order:       1,
			Modules: []model.Module{
				{
					Title:         "Greetings and Introductions",
					Description:   "Learn how to greet people and introduce yourself",
					Order:         1,
					XPReward:      20,
					EstimatedTime: 30,
					Lessons: []model.Lesson{
						{
							Title:         "Basic Greetings",
							Description:   "Learn how to say hello and goodbye",
							Order:         1,
							XPReward:      10,
							EstimatedTime: 15,
							Exercises: []model.Exercise{
								{
									Type:        model.MultipleChoice,
									Question:    "What does 'Hallo' mean in English?",
									Instruction: "Select the correct translation",
									Order:       1,
									XPReward:    2,
									Options:     opts("Hello", "Goodbye", "Please", "Thank you"),
								},
								{
									Type:        model.FillInBlank,
									Question:    "Complete the greeting: '_____, wie geht's?'",
									Instruction: "Fill in the blank with the correct greeting",
									Order:       2,
									XPReward:    3,
									Options: []model.ExerciseOption{
										{Text: "Hallo", IsCorrect: true, Order: 1, Explanation: "This is the most common greeting"},
									},
								},
							},
						},
						{
							Title:         "Introducing Yourself",
							Description:   "Learn how to introduce yourself and ask someone's name",
							Order:         2,
							XPReward:      15,
							EstimatedTime: 20,
							Exercises: []model.Exercise{
								{
									Type:        model.VocabularyCheck,
									Question:    "How do you say 'Goodbye' in German?",
									Instruction: "Type the German word",
									Order:       1,
									XPReward:    3,
									Options: []model.ExerciseOption{
										{Text: "Tschüss", IsCorrect: true, Order: 1, AudioSrc: "/audio/tschuess.mp3"},
										{Text: "Auf Wiedersehen", IsCorrect: true, Order: 2},
									},
								},
								{
									Type:        model.SentenceOrder,
									Question:    "Build the sentence: 'My name is Anna.'",
									Instruction: "Put the words in the correct order",
									Order:       2,
									XPReward:    3,
									Options:     opts("Mein Name ist Anna"),
								},
								{
									Type:        model.PronunciationPractice,
									Question:    "Say: 'Ich heiße Anna.'",
									Instruction: "Record yourself saying the sentence",
									Order:       3,
									XPReward:    2,
									Options:     opts("Ich heiße Anna."),
								},
							},
						},
					},
				},
				{
					Title:         "Numbers and Counting",
					Description:   "Learn numbers from 0 to 100 and how to use them",
					Order:         2,
					XPReward:      25,
					EstimatedTime: 45,
					Lessons: []model.Lesson{
						{
							Title:         "Numbers 1 to 10",
							Description:   "Count from one to ten",
							Order:         1,
							XPReward:      10,
							EstimatedTime: 15,
							Exercises: []model.Exercise{
								{
									Type:        model.MultipleChoice,
									Question:    "What is 'drei'?",
									Instruction: "Select the correct number",
									Order:       1,
									XPReward:    2,
									Options:     opts("3", "2", "8", "13"),
								},
							},
						},
					},
				},
			},
		},
		{
			Title:       "German A1.2",
			Description: "Beginner German course - second level",
			Level:       "A1_2",
			Order:       2,
			Modules: []model.Module{
				{
					Title:         "Daily Activities",
					Description:   "Talk about your daily routine",
					Order:         1,
					XPReward:      30,
					EstimatedTime: 60,
					Lessons: []model.Lesson{
						{
							Title:         "Morning Routine",
							Description:   "Describe what you do in the morning",
							Order:         1,
							XPReward:      10,
							EstimatedTime: 20,
							Exercises: []model.Exercise{
								{
									Type:        model.FillInBlank,
									Question:    "Ich _____ um 7 Uhr auf. (to get up)",
									Instruction: "Fill in the verb",
									Order:       1,
									XPReward:    3,
									Options:     opts("stehe"),
								},
							},
						},
					},
				},
			},
		},
	}
}

// Seed 课程表为空时写入演示数据，重复执行无副作用
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Info("Seed skipped, courses already exist", zap.Int64("courses", count))
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		courses := DemoCatalog()
		for i := range courses {
			if err := tx.Create(&courses[i]).Error; err != nil {
				return err
			}
		}

		// Daily Activities 以 Greetings and Introductions 为前置
		greetings := courses[0].Modules[0]
		daily := courses[1].Modules[0]
		if err := tx.Create(&model.ModulePrerequisite{
			ModuleID:       daily.ID,
			PrerequisiteID: greetings.ID,
		}).Error; err != nil {
			return err
		}

		logger.Log.Info("Demo catalog seeded", zap.Int("courses", len(courses)))
		return nil
	})
}

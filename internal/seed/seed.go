// Package seed generates demo data. Generation is a pure function of the
// seed, so the same seed always yields the same data set.
package seed

import (
	"context"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"

	"LMS-backend/internal/library/books"
	"LMS-backend/internal/library/lendings"
	"LMS-backend/internal/library/users"
	"LMS-backend/internal/platform/db"
)

type Data struct {
	Books    []*books.Book
	Users    []*users.User
	Lendings []*lendings.UserBookLending
}

var remarksOptions = []string{
	"",
	"Returned in good condition",
	"Slight wear on cover",
	"Missing dust jacket",
	"Returned late",
}

// Generate builds three books, three users and lendingCount lendings. Roughly
// 70% of the lendings are returned; copy and loan counters are adjusted
// through the entity methods, the same way the live flows do it.
func Generate(seed int64, lendingCount int, now time.Time) Data {
	rng := rand.New(rand.NewSource(seed))

	bs := []*books.Book{
		books.NewBook("The Great Gatsby", "F. Scott Fitzgerald", "ISBN-978-0-111111111",
			"Penguin Books", "Fiction", 450, 2022, 5),
		books.NewBook("The Silent Echo", "Robert Wilson", "ISBN-978-0-2222222222",
			"Random House", "Fantasy", 500, 2012, 15),
		books.NewBook("Shadows of Time", "Emily Davis", "ISBN-978-0-33333333333",
			"HarperCollins", "Biography", 850, 2002, 8),
	}

	us := []*users.User{
		users.NewUser("Alice", "Bob", now.AddDate(-40, 0, 0), "123567 89", "alice@gmail.com", "1st street, Stockholm"),
		users.NewUser("Charlie", "Diana", now.AddDate(-28, 0, 0), "123587 89", "charlie@gmail.com", "2nd street, Stockholm"),
		users.NewUser("Edward", "Fiona", now.AddDate(-35, 0, 0), "123597 89", "edward@gmail.com", "3rd street, Stockholm"),
	}

	ls := make([]*lendings.UserBookLending, 0, lendingCount)
	for i := 0; i < lendingCount; i++ {
		book := bs[rng.Intn(len(bs))]
		user := us[rng.Intn(len(us))]
		lendingDate := now.AddDate(0, 0, -(1 + rng.Intn(364)))

		l := lendings.NewUserBookLending(book.BookID, user.UserID, lendingDate)

		if rng.Float64() < 0.7 {
			submittedDate := lendingDate.AddDate(0, 0, 1+rng.Intn(29))
			remark := remarksOptions[rng.Intn(len(remarksOptions))]
			l.UpdateSubmittedDate(submittedDate, remark)
			book.IncrementAvailableCopies()
		} else {
			book.DecrementAvailableCopies()
		}
		user.IncrementLendingBookCount()

		ls = append(ls, l)
	}

	return Data{Books: bs, Users: us, Lendings: ls}
}

// Apply persists a generated data set in one transaction.
func Apply(ctx context.Context, conn *sqlx.DB, d Data) error {
	return db.RunInTx(ctx, conn, nil, func(ctx context.Context, tx db.DBTX) error {
		bookStore := books.NewStore(tx)
		for _, b := range d.Books {
			if err := bookStore.Insert(ctx, b); err != nil {
				return err
			}
		}
		userStore := users.NewStore(tx)
		for _, u := range d.Users {
			if err := userStore.Insert(ctx, u); err != nil {
				return err
			}
		}
		lendingStore := lendings.NewStore(tx)
		for _, l := range d.Lendings {
			if err := lendingStore.Insert(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
}

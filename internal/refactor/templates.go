package refactor

// Instruction templates for the refactor passes. The base block frames
// the task and the output contract, the format block pins the JSON
// shape the executor validates against, and each concern body narrows
// the pass to a single category of issue while explicitly excluding
// the others so successive passes do not fight each other.

const baseInstructions = `Imagine you are a meticulous and highly organized software engineer tasked with ensuring the robustness and efficiency of a critical software component. Approach this refactoring task with a mindset of constructive criticism, aiming to identify areas for improvement while acknowledging the strengths of the code. Let your sense of responsibility and dedication to quality guide you as you examine the code for potential optimizations, bug fixes, and adherence to best practices.

Your code refactor output should be in JSON format, and should always include the FULL refactored code (do not abbreviate or shorten the output code).

Include the "language" key in the output to specify the language of the source code file being refactored. e.g.
- C -> "c"
- C++ -> "cpp"
- Python -> "python"
- C# -> "csharp"`

const formatInstructions = "The expected json output format is as follows (make note of the ```json code block``` syntax):\n" +
	"``` json\n" +
	"{\n" +
	`    "language": "string: programming language being refactored",
    "metadata": "dict: metadata dictionary",
    "thoughts": "string: a single string containing your thoughts on the code, and any comments you may have about how you refactored it",
    "refactored_code": "string: a single string containing the entire refactored code, do not abbreviate or shorten the output code"
` + "}\n```"

const closingInstructions = `Take a deep breath, and think this through step-by-step.

Review the code I've given you very carefully, be diligent in your analysis, and make the appropriate changes to resolve any issues you find. Make sure to add comments to the code where appropriate to explain your actions.

If the code is already perfect, you can simply return the original code with no changes.

Note: The code you produce will be automatically integrated into the system it resides in. It is important that your refactored code be COMPLETE (not abbreviated or shortened), and still produce the same output as the original code. Even if there is nothing to change, please make sure you return the complete code.

If you cannot return the full code for some reason, respond with a JSON object containing a single "final_answer" key explaining why you cannot do so.`

// concernInstructions holds the per-pass issue catalogs. Indexed by
// Concern; ActivePasses reads from this table.
var concernInstructions = map[Concern]string{
	ConcernSecurity: `You are conducting a code refactor specifically related to security vulnerabilities. You should be looking for the following issues:
Injection Vulnerabilities, such as:
    Python: os.system('rm -rf ' + userInput) If userInput is not properly sanitized, a malicious user could inject commands.
    C++: Using the system() function without proper sanitization can lead to the same issue.

Buffer Overflow, such as:
    C++: char buffer[5]; strcpy(buffer, "This string is too long!"); This will overflow the buffer and potentially overwrite important memory.

Insecure Direct Object References, such as:
    Python: eval(userInput) The eval() function can execute arbitrary code, so using it on user input is risky.

Security Misconfiguration, such as:
    Python: Leaving debug information in production code, like debug=True in a Flask app.

Sensitive Data Exposure, such as:
    Python: password = "plaintextPassword" Storing passwords in plain text is a bad idea.

Insecure Cryptographic Storage, such as:
    Python: hashlib.md5(password).hexdigest() MD5 is considered broken for cryptographic use.

Unvalidated Redirects and Forwards, such as:
    Python (Flask): return redirect(request.args.get('next', '/')) If the next parameter is manipulated, it could redirect to an attacker-controlled site.

Cross-Site Scripting (XSS), such as:
    Templates that render user data without escaping, which could lead to script injection.

Improper Authorization or Authentication, such as:
    Python: A Flask route without a login-required decorator can be accessed without authentication.

SQL Injection, such as:
    Python: cursor.execute('SELECT * FROM users WHERE name = ' + name) Use parameterized queries or prepared statements instead.

Error Handling and Logging, such as:
    Python: except: pass This silences all exceptions, hiding serious errors.

You can safely ignore anything related to the following:
- Performance: Inefficient algorithm choice.
- Memory Management: Failure to free allocated memory (memory leak).
- Code Correctness: Incorrect conditional statement.
- Maintainability: Monolithic, hard-to-modify functions.
- Reliability: Absence of error handling for critical operations.`,

	ConcernPerformance: `You are conducting a code refactor specifically related to performance issues. You should be looking for the following issues:
Inefficient Algorithms
    Python: Using Bubble Sort (O(n^2)) instead of the built-in sort() (O(n log n)).

Improper Use of Language Constructs
    Python: Using a list when a set or dict would offer faster lookups.
    C++: Misusing STL algorithms or containers can degrade performance.

Unnecessary Object Creation
    Python: Creating new strings in a loop, as strings are immutable.
    C++: Creating unnecessary temporary objects.

Redundant Operations
    Performing the same calculation repeatedly in a loop instead of storing the result.

Lack of Concurrency or Parallelism
    Using a single-threaded approach for IO-bound or high-latency operations.

Excessive Use of Recursion
    Implementing a factorial function with recursion instead of iteration can cause stack overflows and is generally slower.

Blocking I/O Calls
    Synchronous network calls that block the program until the request completes.

Not Using Buffering or Caching
    Not caching repeated function calls with the same arguments; not buffering file or network IO.

Inefficient String Concatenation
    Python: Using += in a loop to concatenate strings. It's better to use ''.join(list_of_strings).
    C++: Using the + operator to concatenate strings in a loop. It's better to use std::ostringstream.

You can safely ignore anything related to the following:
- Security: Unsanitized inputs, buffer overflows, etc.
- Memory Management: Failure to free allocated memory (memory leak).
- Code Correctness: Incorrect conditional statement.
- Maintainability: Monolithic, hard-to-modify functions.
- Reliability: Absence of error handling for critical operations.`,

	ConcernMemory: `You are conducting a code refactor specifically related to memory management issues. You should be looking for the following issues:
Memory Leaks
    Python: Creating circular references between objects.
    C++: Allocating memory with new and never calling delete.

Uninitialized Memory Access
    C++: Using a pointer before it has been initialized leads to undefined behavior.

Null Pointer Dereference
    Python: Accessing an attribute of None.
    C++: Dereferencing a null pointer can crash the program.

Double Freeing Memory
    C++: Deleting the same pointer twice leads to undefined behavior.

Buffer Overflows
    C++: Writing beyond the end of an array.

Improper Use of Stack Memory
    C++: Declaring a very large array on the stack can cause a stack overflow.

Inefficient Memory Use
    Duplicating large data structures unnecessarily.

Failure to Release Unused Memory
    Holding onto large data structures after they are no longer needed.

Improper Thread-Safe Memory Handling
    Multiple threads manipulating a shared data structure without locking can corrupt memory.

Improper Error Handling
    Error paths that skip the deallocation of memory leak it.

You can safely ignore anything related to the following:
- Security: Unsanitized inputs, buffer overflows, etc.
- Performance: Inefficient algorithm choice.
- Code Correctness: Incorrect conditional statement.
- Maintainability: Monolithic, hard-to-modify functions.
- Reliability: Absence of error handling for critical operations.`,

	ConcernCorrectness: `You are conducting a code refactor specifically related to code correctness issues. You should be looking for the following issues:
Off-By-One Errors
    Looping to len(array) when the last valid index is len(array) - 1.

Ignoring Return Values
    Ignoring a return value that could indicate an empty collection or a failed read.

Logic Errors
    Using = (assignment) instead of == (equality) in a condition.

Null Dereferencing
    Calling a method on a value that can be nil or None.

Undefined Behavior
    C++: Shifting a negative number left is undefined behavior.

Failing to Handle Errors or Exceptions
    Not catching exceptions from a function that can raise them.

Type Errors
    Using a string as a number, or vice versa.

Race Conditions
    Two threads incrementing a shared counter without locking.

Integer Overflow
    C++: Adding two large positive integers can wrap to a negative number.

Deadlocks
    Two threads each holding a lock and waiting for the other's.

Improper Initialization
    Using a variable before it is initialized.

Infinite Loops
    A loop whose exit condition can never be met.

Unreachable Code
    Code after a return statement in a function.

Inconsistent State
    An object partially updated and left in an inconsistent state.

You can safely ignore anything related to the following:
- Security: Unsanitized inputs, buffer overflows, etc.
- Performance: Inefficient algorithm choice.
- Memory Management: Failure to free allocated memory (memory leak).
- Maintainability: Monolithic, hard-to-modify functions.
- Reliability: Absence of error handling for critical operations.`,

	ConcernMaintainability: `You are conducting a code refactor specifically related to maintainability issues. You should be looking for the following issues:
Inadequate Documentation
    A function with complex logic but no comments explaining what it does.

Magic Numbers
    Using a number like 3.14159 in a calculation instead of defining a named constant.

Long Functions or Methods
    A function that is hundreds of lines long.

Deeply Nested Code
    Several levels of nested if or for statements.

Duplicate Code
    The same logic implemented in several places.

Inconsistent Naming Conventions
    Mixing snake_case and camelCase for names in the same file.

Tightly Coupled Code
    Changing a single function requires changes in many other parts of the codebase.

Poorly Named Variables or Functions
    A variable named a, or a function named do_stuff.

Hard-Coded Values
    File paths or connection strings written directly into the code.

Code Clutter
    Commented-out code or unused variables left in place.

Over-complicated Expressions or Logic
    A complex one-liner where a simple loop would be more readable.

You can safely ignore anything related to the following:
- Security: Unsanitized inputs, buffer overflows, etc.
- Performance: Inefficient algorithm choice.
- Memory Management: Failure to free allocated memory (memory leak).
- Code Correctness: Incorrect conditional statement.
- Reliability: Absence of error handling for critical operations.`,

	ConcernReliability: `You are conducting a code refactor specifically related to reliability issues. You should be looking for the following issues:
Error Handling
    Not catching exceptions from a function that can raise or throw them.

Uninitialized Variables
    Using a variable or pointer before it is initialized.

Lack of Fault Tolerance
    Not handling failures of a database or network dependency, leading to a crash when it is unavailable.

Resource Exhaustion
    Not handling out-of-memory conditions when creating large data structures.

Improper Shutdown
    Not closing a file or network connection when done with it.

Thread Safety Issues
    A function that modifies shared state without proper locking.

Poor Error Messages
    Catching an error and logging a generic message, losing the original cause.

You can safely ignore anything related to the following:
- Security: Unsanitized inputs, buffer overflows, etc.
- Performance: Inefficient algorithm choice.
- Memory Management: Failure to free allocated memory (memory leak).
- Code Correctness: Incorrect conditional statement.
- Maintainability: Monolithic, hard-to-modify functions.`,
}
